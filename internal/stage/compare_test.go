package stage

import (
	"testing"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

func TestContainerCompare(t *testing.T) {
	a := chain(false, true)
	b := chain(false, true)
	if a.ID() == b.ID() {
		t.Fatal("containers should have distinct ids")
	}
	if !a.Equal(b) {
		t.Error("structurally equal containers should compare equal")
	}

	a.Activate(xDown, 0)
	if !a.Equal(b) {
		t.Error("progress should not affect comparison")
	}

	tests := []struct {
		name string
		x, y *Container
	}{
		{"fewer stages first", NewContainer("x", MustNew(xDown)), chain(false, false)},
		{"non-blocking first", chain(false, false), chain(true, false)},
		{"lower key first", NewContainer("x", MustNew(signal.Key{Code: key.CodeA})), NewContainer("y", MustNew(signal.Key{Code: key.CodeB}))},
		{"any mods first", NewContainer("x", MustNew(xDown)), NewContainer("y", MustNew(xDown, WithMods(ExactMods(0))))},
		{"generic first", NewContainer("x", MustNew(nil)), NewContainer("y", MustNew(xDown))},
		{"tolerance", NewContainer("x", MustNew(signal.Cursor{}, WithTolerance(1))), NewContainer("y", MustNew(signal.Cursor{}, WithTolerance(2)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.Compare(tt.y); got != -1 {
				t.Errorf("Compare() = %d, want -1", got)
			}
			if got := tt.y.Compare(tt.x); got != 1 {
				t.Errorf("reverse Compare() = %d, want 1", got)
			}
		})
	}
}

func TestKindMatchVersusTemplate(t *testing.T) {
	kind, _ := NewKindMatch(xDown)
	exact := MustNew(xDown)
	if kind.Compare(&exact) == 0 {
		t.Error("kind match and template match should differ")
	}
}
