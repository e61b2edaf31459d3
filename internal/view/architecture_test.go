package view

import (
	"testing"

	"propertybook/testutil"
)

func TestNoModelImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.UnderAny("propertybook/internal"), "view is a leaf package")
}
