//go:build stagedebug

package stage

import "fmt"

// assertf panics when cond is false. Enabled with -tags stagedebug.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("stage: invariant violated: " + fmt.Sprintf(format, args...))
	}
}
