package stage

import (
	"cmp"
	"slices"

	"github.com/dshills/stagehook/internal/signal"
)

// Compare orders stages structurally by matcher, template, modifier filter,
// blocking flag and tolerance. Activation state is ignored.
func (s *Stage) Compare(o *Stage) int {
	if s.m == nil || o.m == nil {
		return cmp.Compare(boolInt(s.m != nil), boolInt(o.m != nil))
	}
	return cmp.Or(
		cmp.Compare(s.m.ord, o.m.ord),
		cmp.Compare(s.kind, o.kind),
		cmp.Compare(boolInt(s.anyKind), boolInt(o.anyKind)),
		signal.Compare(s.intercept, o.intercept),
		s.mods.compare(o.mods),
		cmp.Compare(boolInt(s.blocking), boolInt(o.blocking)),
		cmp.Compare(s.tolerance, o.tolerance),
	)
}

// Compare orders containers by their stages, lexicographically. Identity,
// name and progress do not take part.
func (c *Container) Compare(o *Container) int {
	return slices.CompareFunc(c.stages, o.stages, func(a, b Stage) int {
		return a.Compare(&b)
	})
}

// Equal reports whether both containers have structurally equal stages.
func (c *Container) Equal(o *Container) bool {
	return c.Compare(o) == 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
