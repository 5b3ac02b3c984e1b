package stage

import (
	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// FromKey builds a key stage from a parsed key specification. Modifiers
// named in the specification become an exact filter; options are applied
// afterwards and may override it.
func FromKey(e key.Event, opts ...Option) Stage {
	opts = append([]Option{WithMods(ModsFromEvent(e))}, opts...)
	return MustNew(signal.NewKey(e), opts...)
}

// FromSequence builds one key stage per event of a sequence.
func FromSequence(seq *key.Sequence, opts ...Option) []Stage {
	stages := make([]Stage, 0, seq.Len())
	for _, e := range seq.Events {
		stages = append(stages, FromKey(e, opts...))
	}
	return stages
}
