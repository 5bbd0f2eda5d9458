package storefront

import (
	_ "embed"
)

//go:embed assets/runtime.js
var runtimeSource string

// RuntimeSource returns the client cart/checkout runtime. It is a fixed
// fragment: all per-store values reach it through the storefront-data
// JSON element, never through string interpolation.
func RuntimeSource() string {
	return runtimeSource
}
