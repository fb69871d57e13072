//go:build chessdebug

package chessmg

// debugChecks makes every make/undo validate the position and panic on the
// first broken invariant. Enable with -tags chessdebug.
const debugChecks = true
