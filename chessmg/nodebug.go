//go:build !chessdebug

package chessmg

const debugChecks = false
