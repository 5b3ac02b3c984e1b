package signal

// within reports |a-b| <= tol without overflowing int32 arithmetic.
func within(a, b int32, tol uint32) bool {
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	return d <= int64(tol)
}

// Resembles reports whether c is within tol of other on every axis and the
// modes are compatible. c is the template.
func (c Cursor) Resembles(other Cursor, tol uint32) bool {
	if !c.Mode.Compatible(other.Mode) {
		return false
	}
	return within(c.X, other.X, tol) &&
		within(c.Y, other.Y, tol) &&
		within(c.Z, other.Z, tol)
}

// ResemblesFromZero compares wheel deltas by direction and magnitude.
// s is the template: an axis left at zero accepts any delta; otherwise the
// incoming delta must point the same way and its distance from zero must be
// within tol of the template's.
func (s Scroll) ResemblesFromZero(other Scroll, tol uint32) bool {
	return axisFromZero(s.DX, other.DX, tol) &&
		axisFromZero(s.DY, other.DY, tol) &&
		axisFromZero(s.DZ, other.DZ, tol)
}

func axisFromZero(tmpl, in int32, tol uint32) bool {
	if tmpl == 0 {
		return true
	}
	if (tmpl < 0) != (in < 0) || in == 0 {
		return false
	}
	return within(abs32(tmpl), abs32(in), tol)
}

// abs32 returns |v|, saturating at MaxInt32.
func abs32(v int32) int32 {
	if v >= 0 {
		return v
	}
	if v == -1<<31 {
		return 1<<31 - 1
	}
	return -v
}
