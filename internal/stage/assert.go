//go:build !stagedebug

package stage

// assertf is a no-op in regular builds.
func assertf(bool, string, ...any) {}
