package core

import (
	"testing"

	"propertybook/testutil"
)

func TestCoreStaysBelowAdapters(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.UnderAny(
		"propertybook/internal/infra",
		"propertybook/internal/adapters",
		"propertybook/internal/app",
		"propertybook/internal/command",
		"propertybook/internal/backup",
	), "core is wired by adapters, never the reverse")
}
