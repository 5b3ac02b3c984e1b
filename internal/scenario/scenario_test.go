package scenario

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/stagehook/internal/dispatcher"
	"github.com/dshills/stagehook/internal/signal"
	"github.com/dshills/stagehook/internal/trigger"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func mustParse(t *testing.T, doc string) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return f
}

func TestReplayGolden(t *testing.T) {
	for _, name := range []string{"save_chord", "analog"} {
		t.Run(name, func(t *testing.T) {
			r := NewRunner(WithRunnerClock(fixedClock))
			rep, err := r.RunFile("testdata/" + name + ".yaml")
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, name, []byte(rep.Text()))
		})
	}
}

func TestReplayHandlerError(t *testing.T) {
	f := mustParse(t, `
name: failing
hotkeys:
  - name: save
    keys: "Ctrl+S"
signals:
  - key: "Ctrl+S:down"
`)
	h := trigger.HandlerFunc(func(context.Context, trigger.Notification) error {
		return errors.New("boom")
	})
	rep, err := NewRunner(WithHandler(h)).Run(f)
	require.NoError(t, err)

	require.Len(t, rep.Steps, 1)
	assert.Equal(t, []string{"save"}, rep.Steps[0].Fired)
	assert.Equal(t, []string{"save: boom"}, rep.Steps[0].Errors)
	require.Len(t, rep.Metrics, 1)
	assert.Equal(t, uint64(1), rep.Metrics[0].Dropped)
	assert.Contains(t, rep.Text(), `fired=save error="save: boom"`)
}

func TestReplayLuaHandler(t *testing.T) {
	lh, err := trigger.NewLuaHandler(`
function on_trigger(t)
  if t.kind == "key" then
    return "refused " .. t.name
  end
end
`)
	require.NoError(t, err)
	defer lh.Close()

	f := mustParse(t, `
name: lua
hotkeys:
  - name: quit
    keys: "q:down"
  - name: wheel
    stages:
      - scroll: {dy: 1}
        tolerance: 2
signals:
  - key: "q:down"
  - scroll: {dy: 3}
`)
	rep, err := NewRunner(WithHandler(lh), WithHandlerTimeout(time.Second)).Run(f)
	require.NoError(t, err)

	require.Len(t, rep.Steps, 2)
	assert.Equal(t, []string{"quit: refused quit"}, rep.Steps[0].Errors)
	assert.Equal(t, []string{"wheel"}, rep.Steps[1].Fired)
	assert.Empty(t, rep.Steps[1].Errors)
	assert.Equal(t, []Completion{{Name: "quit", Count: 1}, {Name: "wheel", Count: 1}}, rep.Completions)
}

func TestReplayExplicitKinds(t *testing.T) {
	f := mustParse(t, `
name: routing
hotkeys:
  - name: keys-only
    kinds: [key]
    stages:
      - any: true
signals:
  - scroll: {dy: 1}
  - key: "a:down"
`)
	rep, err := NewRunner().Run(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"key"}, rep.Hotkeys[0].Routed)
	assert.Empty(t, rep.Steps[0].Fired)
	assert.False(t, rep.Steps[0].Suppressed)
	assert.Equal(t, []string{"keys-only"}, rep.Steps[1].Fired)
}

func TestReplayKindStage(t *testing.T) {
	f := mustParse(t, `
name: kind stage
hotkeys:
  - name: any-key
    blocking: true
    stages:
      - kind: key
signals:
  - scroll: {dy: 1}
  - key: "Ctrl+A:down"
  - key: "a:up"
`)
	rep, err := NewRunner().Run(f)
	require.NoError(t, err)

	assert.Equal(t, "any-key[kind key block]", rep.Hotkeys[0].Stages)
	assert.Equal(t, []string{"key"}, rep.Hotkeys[0].Routed)
	assert.Equal(t, "pass", rep.Steps[0].Decision)
	assert.Equal(t, "Ctrl", rep.Steps[1].Mods)
	assert.Equal(t, "block", rep.Steps[1].Decision)
	assert.Equal(t, "block", rep.Steps[2].Decision)
	assert.Equal(t, 2, rep.Blocked())
}

func TestReplayDisabledKindsFromConfig(t *testing.T) {
	f := mustParse(t, `
name: config
hotkeys:
  - name: esc
    keys: "Esc"
    blocking: true
signals:
  - key: "Esc:down"
`)
	cfg := dispatcher.DefaultConfig().WithDisabledKinds(signal.KindKey)

	rep, err := NewRunner(WithDispatcherConfig(cfg)).Run(f)
	require.NoError(t, err)
	assert.True(t, rep.Steps[0].Suppressed)
	assert.Equal(t, "pass", rep.Steps[0].Decision)
	assert.Equal(t, []Completion{{Name: "esc", Count: 0}}, rep.Completions)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"unknown field", "name: x\nhotkey: []\n"},
		{"missing name", "hotkeys: []\n"},
		{"unnamed hotkey", "name: x\nhotkeys:\n  - keys: a\n"},
		{"duplicate hotkey", "name: x\nhotkeys:\n  - {name: a, keys: a}\n  - {name: a, keys: b}\n"},
		{"keys and stages", "name: x\nhotkeys:\n  - name: a\n    keys: a\n    stages: [{any: true}]\n"},
		{"no stages", "name: x\nhotkeys:\n  - name: a\n"},
		{"negative repeat", "name: x\nsignals:\n  - {key: a, repeat: -1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestRunCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad key", "name: x\nhotkeys:\n  - {name: a, keys: \"Hyper+Q\"}\n"},
		{"two templates", "name: x\nhotkeys:\n  - name: a\n    stages: [{key: a, any: true}]\n"},
		{"no template", "name: x\nhotkeys:\n  - name: a\n    stages: [{tolerance: 1}]\n"},
		{"cursor mode", "name: x\nhotkeys:\n  - name: a\n    stages: [{cursor: {x: 1, y: 1, mode: diagonal}}]\n"},
		{"echo id", "name: x\nhotkeys:\n  - name: a\n    stages: [{echo: seven}]\n"},
		{"stage kind", "name: x\nhotkeys:\n  - name: a\n    stages: [{kind: joystick}]\n"},
		{"stage mods", "name: x\nhotkeys:\n  - name: a\n    stages: [{key: a, mods: Hyper}]\n"},
		{"kind mods", "name: x\nhotkeys:\n  - name: a\n    stages: [{kind: key, mods: none}]\n"},
		{"routing kind", "name: x\nhotkeys:\n  - {name: a, keys: a, kinds: [joystick]}\n"},
		{"empty step", "name: x\nsignals:\n  - {mods: Ctrl}\n"},
		{"two signals", "name: x\nsignals:\n  - {key: a, generic: b}\n"},
		{"step key", "name: x\nsignals:\n  - {key: \"<Q-a>\"}\n"},
		{"step mods", "name: x\nsignals:\n  - {key: a, mods: Hyper}\n"},
		{"toggle kind", "name: x\nsignals:\n  - {disable: joystick}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, tt.doc)
			_, err := NewRunner().Run(f)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	rep, err := NewRunner().RunFile("testdata/analog.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteYAML(&buf))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *rep, got)
}

func TestWriteText(t *testing.T) {
	rep := &Report{
		Scenario: "empty",
		Steps:    []StepReport{{Index: 1, Signal: "generic tick", Decision: "pass"}},
	}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Equal(t, "scenario: empty\nstep 1: generic tick -> pass\ncompletions: none\n", buf.String())
}
