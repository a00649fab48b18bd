// Package filter runs an optional user Lua script over fetched headlines.
// The script defines a global function filter(headline) that receives a
// table with title, url, and source fields and returns:
//
//	false          → drop the headline
//	true or nil    → keep it unchanged
//	a string       → keep it with the string as the new title
//
// Script errors disable the filter for the session rather than killing
// the program; headlines then pass through unfiltered.
package filter

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/chyron/types"
)

const funcName = "filter"

// Filter holds a compiled user script. Not safe for concurrent use; it is
// called only from the refresh path, one headline at a time.
type Filter struct {
	state *lua.LState
	fn    lua.LValue
}

// Load compiles the script at path and verifies it defines the filter
// function.
func Load(path string) (*Filter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter script %s: %w", path, err)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)

	if err := L.DoString(string(src)); err != nil {
		L.Close()
		return nil, fmt.Errorf("executing filter script %s: %w", path, err)
	}

	fn := L.GetGlobal(funcName)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("filter script %s does not define a %s function", path, funcName)
	}

	return &Filter{state: L, fn: fn}, nil
}

// Close releases the Lua VM.
func (f *Filter) Close() {
	f.state.Close()
}

// Apply runs the script against one headline. It returns the (possibly
// retitled) headline and whether to keep it. A script error is returned
// so the caller can log it and disable the filter.
func (f *Filter) Apply(h types.Headline) (types.Headline, bool, error) {
	L := f.state

	tbl := L.NewTable()
	tbl.RawSetString("title", lua.LString(h.Title))
	tbl.RawSetString("url", lua.LString(h.URL))
	tbl.RawSetString("source", lua.LString(h.Source))

	if err := L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true}, tbl); err != nil {
		return h, true, fmt.Errorf("filter call: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case lua.LBool:
		return h, bool(v), nil
	case lua.LString:
		h.Title = string(v)
		return h, true, nil
	case *lua.LNilType:
		return h, true, nil
	default:
		return h, true, fmt.Errorf("filter returned %s, want boolean, string, or nil", ret.Type())
	}
}

// openSafeLibs opens only the side-effect-free subset of the Lua standard
// libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that could touch the filesystem or load code.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
