//go:build !globalint_debug

package rules

const debugChecks = false
