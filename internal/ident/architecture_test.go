package ident

import (
	"testing"

	"propertybook/testutil"
)

func TestNoModelImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.UnderAny("propertybook/internal"), "ident is a leaf package")
}
