package signal

import (
	"cmp"
	"strings"
)

// Compare orders two signals structurally: nil first, then by kind, then
// field by field. It returns -1, 0 or +1.
func Compare(a, b Signal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	switch x := a.(type) {
	case Key:
		y, ok := b.(Key)
		if !ok {
			break
		}
		return cmp.Or(
			cmp.Compare(x.Code, y.Code),
			cmp.Compare(x.Scan, y.Scan),
			cmp.Compare(x.Dir, y.Dir),
		)
	case Cursor:
		y, ok := b.(Cursor)
		if !ok {
			break
		}
		return cmp.Or(
			cmp.Compare(x.Mode, y.Mode),
			cmp.Compare(x.X, y.X),
			cmp.Compare(x.Y, y.Y),
			cmp.Compare(x.Z, y.Z),
		)
	case Scroll:
		y, ok := b.(Scroll)
		if !ok {
			break
		}
		return cmp.Or(
			cmp.Compare(x.DX, y.DX),
			cmp.Compare(x.DY, y.DY),
			cmp.Compare(x.DZ, y.DZ),
		)
	case Echo:
		if y, ok := b.(Echo); ok {
			return cmp.Compare(x.ID, y.ID)
		}
	case Generic:
		y, ok := b.(Generic)
		if !ok {
			break
		}
		return cmp.Or(
			cmp.Compare(x.Code, y.Code),
			strings.Compare(x.Name, y.Name),
		)
	}

	// Foreign Signal implementations only order by description.
	return strings.Compare(a.String(), b.String())
}

// Equal reports whether two signals are structurally identical.
func Equal(a, b Signal) bool {
	return Compare(a, b) == 0
}
