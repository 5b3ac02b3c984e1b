package trigger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

const recordScript = `
calls = {}
function on_trigger(t)
  calls[#calls + 1] = t.name .. "|" .. t.kind .. "|" .. t.signal .. "|" .. t.mods
  stagehook.log("fired " .. t.name)
  if t.name == "bad" then
    return "refused"
  end
end
`

func TestLuaHandler(t *testing.T) {
	var logs bytes.Buffer
	h, err := NewLuaHandler(recordScript, WithLuaLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatalf("NewLuaHandler() failed: %v", err)
	}
	defer h.Close()

	n := Notification{
		ContainerID: uuid.New(),
		Name:        "save",
		Signal:      signal.Key{Code: key.CodeS, Dir: key.DirUp},
		Mods:        key.ModCtrl,
		At:          time.Unix(10, 0),
	}
	if err := h.Handle(context.Background(), n); err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}

	calls, ok := h.L.GetGlobal("calls").(*lua.LTable)
	if !ok || calls.Len() != 1 {
		t.Fatal("expected one recorded call")
	}
	if !strings.Contains(logs.String(), "fired save") {
		t.Errorf("expected script log, got %q", logs.String())
	}

	n.Name = "bad"
	if err := h.Handle(context.Background(), n); err == nil || err.Error() != "refused" {
		t.Errorf("expected refused error, got %v", err)
	}
}

func TestLuaHandlerRecordsFields(t *testing.T) {
	h, err := NewLuaHandler(recordScript)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	n := Notification{Name: "save", Signal: signal.Scroll{DY: -1}, Mods: key.ModNone}
	if err := h.Handle(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if err := h.L.DoString(`first = calls[1]`); err != nil {
		t.Fatal(err)
	}
	want := "save|scroll|scroll (0,-1,0)|none"
	if got := h.L.GetGlobal("first").String(); got != want {
		t.Errorf("recorded %q, want %q", got, want)
	}
}

func TestLuaHandlerSandbox(t *testing.T) {
	for _, src := range []string{
		`function on_trigger(t) return io.write("x") end`,
		`function on_trigger(t) return os.exit(1) end`,
		`function on_trigger(t) return dofile("/etc/passwd") end`,
	} {
		h, err := NewLuaHandler(src)
		if err != nil {
			t.Fatalf("NewLuaHandler() failed: %v", err)
		}
		if err := h.Handle(context.Background(), Notification{Name: "x"}); err == nil {
			t.Errorf("%s: expected sandbox error", src)
		}
		h.Close()
	}
}

func TestLuaHandlerMissingFunction(t *testing.T) {
	if _, err := NewLuaHandler(`x = 1`); err == nil {
		t.Error("expected error for script without on_trigger")
	}
	if _, err := NewLuaHandler(`function (`); err == nil {
		t.Error("expected syntax error")
	}

	h, err := NewLuaHandler(`function fire(t) end`, WithLuaFunction("fire"))
	if err != nil {
		t.Fatalf("custom function: %v", err)
	}
	h.Close()
	if err := h.Handle(context.Background(), Notification{}); err != ErrScriptClosed {
		t.Errorf("expected ErrScriptClosed, got %v", err)
	}
}

func TestLoadLuaHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trigger.lua")
	if err := os.WriteFile(path, []byte(recordScript), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := LoadLuaHandler(path)
	if err != nil {
		t.Fatalf("LoadLuaHandler() failed: %v", err)
	}
	defer h.Close()

	if _, err := LoadLuaHandler(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}
