// Package catalog holds the device options the storefront sells and their prices,
// loaded from a YAML document embedded into the binary.
package catalog
