package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaFunction is the global a script defines to receive completions.
const DefaultLuaFunction = "on_trigger"

// LuaHandler calls a function of a sandboxed Lua script for every
// notification. The function receives a table with the fields name, id,
// signal, kind, mods and at (Unix milliseconds). Returning a string reports
// it as an error.
//
// gopher-lua states are single-threaded, so calls are serialized.
type LuaHandler struct {
	mu     sync.Mutex
	L      *lua.LState
	fn     string
	logger *slog.Logger
	closed bool
}

// LuaOption configures a LuaHandler.
type LuaOption func(*LuaHandler)

// WithLuaFunction sets the global function to call.
func WithLuaFunction(name string) LuaOption {
	return func(h *LuaHandler) {
		if name != "" {
			h.fn = name
		}
	}
}

// WithLuaLogger sets the logger behind stagehook.log.
func WithLuaLogger(l *slog.Logger) LuaOption {
	return func(h *LuaHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewLuaHandler runs source in a fresh sandboxed state and returns a
// handler calling its trigger function.
func NewLuaHandler(source string, opts ...LuaOption) (*LuaHandler, error) {
	h := newLuaHandler(opts)
	if err := h.L.DoString(source); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("trigger: load script: %w", err)
	}
	if err := h.check(); err != nil {
		return nil, err
	}
	return h, nil
}

// LoadLuaHandler is like NewLuaHandler but reads the script from path.
func LoadLuaHandler(path string, opts ...LuaOption) (*LuaHandler, error) {
	h := newLuaHandler(opts)
	if err := h.L.DoFile(path); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("trigger: load script %s: %w", path, err)
	}
	if err := h.check(); err != nil {
		return nil, err
	}
	return h, nil
}

func newLuaHandler(opts []LuaOption) *LuaHandler {
	h := &LuaHandler{
		fn:     DefaultLuaFunction,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(h.L)
	h.L.SetGlobal("stagehook", h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"log": h.luaLog,
	}))
	return h
}

// openSafeLibraries opens base, table, string and math, and removes the
// loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (h *LuaHandler) check() error {
	if fn := h.L.GetGlobal(h.fn); fn.Type() != lua.LTFunction {
		h.L.Close()
		return fmt.Errorf("trigger: script does not define function %q", h.fn)
	}
	return nil
}

// luaLog implements stagehook.log(msg).
func (h *LuaHandler) luaLog(L *lua.LState) int {
	h.logger.Info(L.CheckString(1), "source", "lua")
	return 0
}

// Handle implements Handler.
func (h *LuaHandler) Handle(ctx context.Context, n Notification) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrScriptClosed
	}

	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	t := h.L.NewTable()
	t.RawSetString("name", lua.LString(n.Name))
	t.RawSetString("id", lua.LString(n.ContainerID.String()))
	t.RawSetString("mods", lua.LString(n.Mods.String()))
	t.RawSetString("at", lua.LNumber(n.At.UnixMilli()))
	if n.Signal != nil {
		t.RawSetString("signal", lua.LString(n.Signal.String()))
		t.RawSetString("kind", lua.LString(n.Signal.Kind().String()))
	}

	err := h.L.CallByParam(lua.P{
		Fn:      h.L.GetGlobal(h.fn),
		NRet:    1,
		Protect: true,
	}, t)
	if err != nil {
		return fmt.Errorf("trigger: %s: %w", h.fn, err)
	}

	ret := h.L.Get(-1)
	h.L.Pop(1)
	if msg, ok := ret.(lua.LString); ok {
		return errors.New(string(msg))
	}
	return nil
}

// Close releases the Lua state.
func (h *LuaHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		h.L.Close()
	}
}
