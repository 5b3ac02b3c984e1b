package stage

import (
	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// matcher is the comparison strategy of a stage. One exists per template
// kind; a stage points at its matcher from construction on.
type matcher struct {
	name string
	ord  int

	// mods reports whether the stage's modifier filter takes part.
	mods bool

	// match compares an incoming signal with the stage's template.
	match func(s *Stage, sig signal.Signal) bool
}

var (
	genericMatcher = &matcher{name: "generic", ord: 0, match: matchGeneric}
	keyMatcher     = &matcher{name: "key", ord: 1, mods: true, match: matchKey}
	cursorMatcher  = &matcher{name: "cursor", ord: 2, mods: true, match: matchCursor}
	scrollMatcher  = &matcher{name: "scroll", ord: 3, mods: true, match: matchScroll}
	echoMatcher    = &matcher{name: "echo", ord: 4, mods: true, match: matchEcho}
)

// matcherFor returns the strategy for a template, or nil if the template
// type is not one of the known signals.
func matcherFor(tmpl signal.Signal) *matcher {
	switch tmpl.(type) {
	case nil, signal.Generic:
		return genericMatcher
	case signal.Key:
		return keyMatcher
	case signal.Cursor:
		return cursorMatcher
	case signal.Scroll:
		return scrollMatcher
	case signal.Echo:
		return echoMatcher
	default:
		return nil
	}
}

func matchGeneric(s *Stage, sig signal.Signal) bool {
	if s.intercept == nil {
		return true
	}
	if sig == nil {
		return false
	}
	return s.intercept.Kind() == sig.Kind()
}

func matchKey(s *Stage, sig signal.Signal) bool {
	in, ok := sig.(signal.Key)
	if !ok {
		return false
	}
	t := s.intercept.(signal.Key)
	if t.Code != key.CodeNone && t.Code != in.Code {
		return false
	}
	if t.Scan != 0 && t.Scan != in.Scan {
		return false
	}
	return t.Dir.Matches(in.Dir)
}

func matchCursor(s *Stage, sig signal.Signal) bool {
	in, ok := sig.(signal.Cursor)
	if !ok {
		return false
	}
	return s.intercept.(signal.Cursor).Resembles(in, s.tolerance)
}

func matchScroll(s *Stage, sig signal.Signal) bool {
	in, ok := sig.(signal.Scroll)
	if !ok {
		return false
	}
	return s.intercept.(signal.Scroll).ResemblesFromZero(in, s.tolerance)
}

func matchEcho(s *Stage, sig signal.Signal) bool {
	in, ok := sig.(signal.Echo)
	if !ok {
		return false
	}
	id := s.intercept.(signal.Echo).ID
	return id == signal.AnyEcho || id == in.ID
}
