package domain

import (
	"testing"

	"propertybook/testutil"
)

func TestDomainImportsOnlyStandardLibrary(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.NonStandard, "domain must only use the standard library")
}
