// Package scripting runs the Lua snippets bound to keys in the config. The API
// is exposed under the global `explorer` table and, for convenience, at the
// top level:
//
//	layers.list()                   -> { {id=, name=, category=, enabled=, ...}, ... }
//	layers.toggle(name | id)        -> new enabled state
//	layers.enable(name | id[, enabled])
//	layers.enabled(name | id)       -> bool
//	layers.refresh()                -> number of temporal layers reloaded
//	globe.look_at(lat, lon[, range])
//	globe.pan(dlat, dlon)
//	globe.zoom(factor)
//	globe.reset()
//	globe.reset_heading()
//	globe.viewpoint()               -> {latitude=, longitude=, altitude=, heading=, tilt=, roll=}
//	markers.add(name, lat, lon)
//	markers.move(name, lat, lon)
//	markers.select(name[, selected])
//	markers.open(name)
//	markers.remove(name)            -> bool
//	markers.list()                  -> { {id=, name=, latitude=, longitude=, selected=}, ... }
//	flash(text | {text=, error=})
//	copy_to_clipboard(text)         -> true | nil, err
package scripting

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/layers"
	"github.com/emxsys/wmt-explorer/internal/marker"
	"github.com/emxsys/wmt-explorer/internal/ui/flash"
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// Env is the state a script can reach.
type Env struct {
	Earth *globe.Earth
	// WriteClipboard defaults to the system clipboard.
	WriteClipboard func(string) error
}

type runner struct {
	env  Env
	cmds []tea.Cmd
}

// Run executes src to completion. Flash messages raised by the script are
// returned as a command; a Lua error aborts the script and is returned as is.
// Changes made before the error are kept.
func Run(env Env, src string) (tea.Cmd, error) {
	if env.Earth == nil {
		return nil, errors.New("lua: no globe to script")
	}
	if env.WriteClipboard == nil {
		env.WriteClipboard = clipboard.WriteAll
	}

	L := lua.NewState()
	defer L.Close()
	r := &runner{env: env}
	registerAPI(L, r)

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("lua: %w", err)
	}
	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)
	var cmd tea.Cmd
	if len(r.cmds) > 0 {
		cmd = tea.Sequence(r.cmds...)
	}
	if err != nil {
		return cmd, fmt.Errorf("lua: %w", err)
	}
	return cmd, nil
}

func (r *runner) registry() *layers.Registry {
	return r.env.Earth.Registry()
}

// checkLayer accepts a display name or a layer ID.
func (r *runner) checkLayer(L *lua.LState, n int) *layers.Layer {
	name := L.CheckString(n)
	if l, ok := r.env.Earth.FindLayer(name); ok {
		return l
	}
	if id, err := uuid.Parse(name); err == nil {
		if l, ok := r.registry().LayerByID(id); ok {
			return l
		}
	}
	L.RaiseError("unknown layer %q", name)
	return nil
}

func (r *runner) checkMarker(L *lua.LState, n int) *marker.Marker {
	m, err := r.env.Earth.FindMarker(L.CheckString(n))
	r.raise(L, err)
	return m
}

func (r *runner) raise(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

func registerAPI(L *lua.LState, r *runner) {
	layersTable := L.NewTable()
	layersTable.RawSetString("list", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for i, l := range r.registry().RenderOrder() {
			entry := L.NewTable()
			entry.RawSetString("id", lua.LString(l.ID.String()))
			entry.RawSetString("name", lua.LString(l.DisplayName))
			entry.RawSetString("category", lua.LString(l.Category().String()))
			entry.RawSetString("index", lua.LNumber(i))
			entry.RawSetString("enabled", lua.LBool(l.Enabled()))
			entry.RawSetString("pickable", lua.LBool(l.PickEnabled()))
			entry.RawSetString("in_menu", lua.LBool(l.ShowInMenu()))
			entry.RawSetString("temporal", lua.LBool(l.IsTemporal()))
			entry.RawSetString("opacity", lua.LNumber(l.Opacity()))
			tbl.Append(entry)
		}
		L.Push(tbl)
		return 1
	}))
	layersTable.RawSetString("toggle", L.NewFunction(func(L *lua.LState) int {
		l := r.checkLayer(L, 1)
		r.raise(L, r.registry().ToggleLayer(l))
		L.Push(lua.LBool(l.Enabled()))
		return 1
	}))
	layersTable.RawSetString("enable", L.NewFunction(func(L *lua.LState) int {
		l := r.checkLayer(L, 1)
		enabled := L.OptBool(2, true)
		r.raise(L, r.registry().SetLayerEnabled(l, enabled))
		return 0
	}))
	layersTable.RawSetString("enabled", L.NewFunction(func(L *lua.LState) int {
		l := r.checkLayer(L, 1)
		L.Push(lua.LBool(l.Enabled()))
		return 1
	}))
	layersTable.RawSetString("refresh", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.env.Earth.RefreshLayers()))
		return 1
	}))

	globeTable := L.NewTable()
	globeTable.RawSetString("look_at", L.NewFunction(func(L *lua.LState) int {
		lat := float64(L.CheckNumber(1))
		lon := float64(L.CheckNumber(2))
		rng := float64(L.OptNumber(3, 0))
		r.raise(L, r.env.Earth.LookAt(lat, lon, rng))
		return 0
	}))
	globeTable.RawSetString("pan", L.NewFunction(func(L *lua.LState) int {
		r.env.Earth.Pan(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)))
		return 0
	}))
	globeTable.RawSetString("zoom", L.NewFunction(func(L *lua.LState) int {
		factor := float64(L.CheckNumber(1))
		if !(factor > 0) {
			L.ArgError(1, "zoom factor must be positive")
		}
		r.env.Earth.Zoom(factor)
		return 0
	}))
	globeTable.RawSetString("reset", L.NewFunction(func(L *lua.LState) int {
		r.env.Earth.Reset()
		return 0
	}))
	globeTable.RawSetString("reset_heading", L.NewFunction(func(L *lua.LState) int {
		r.env.Earth.ResetHeading()
		return 0
	}))
	globeTable.RawSetString("viewpoint", L.NewFunction(func(L *lua.LState) int {
		nav := r.env.Earth.Navigator()
		tbl := L.NewTable()
		tbl.RawSetString("latitude", lua.LNumber(nav.Latitude))
		tbl.RawSetString("longitude", lua.LNumber(nav.Longitude))
		tbl.RawSetString("altitude", lua.LNumber(nav.Range))
		tbl.RawSetString("heading", lua.LNumber(nav.Heading))
		tbl.RawSetString("tilt", lua.LNumber(nav.Tilt))
		tbl.RawSetString("roll", lua.LNumber(nav.Roll))
		L.Push(tbl)
		return 1
	}))

	markersTable := L.NewTable()
	markersTable.RawSetString("add", L.NewFunction(func(L *lua.LState) int {
		_, err := r.env.Earth.AddMarker(L.CheckString(1), float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
		r.raise(L, err)
		return 0
	}))
	markersTable.RawSetString("move", L.NewFunction(func(L *lua.LState) int {
		r.raise(L, r.env.Earth.MoveMarker(L.CheckString(1), float64(L.CheckNumber(2)), float64(L.CheckNumber(3))))
		return 0
	}))
	markersTable.RawSetString("select", L.NewFunction(func(L *lua.LState) int {
		r.checkMarker(L, 1).Select(L.OptBool(2, true))
		return 0
	}))
	markersTable.RawSetString("open", L.NewFunction(func(L *lua.LState) int {
		m := r.checkMarker(L, 1)
		m.Open()
		r.cmds = append(r.cmds, flash.Cmd(flash.AddMessage{Text: m.String()}))
		return 0
	}))
	markersTable.RawSetString("remove", L.NewFunction(func(L *lua.LState) int {
		m, ok := r.env.Earth.Markers().Find(L.CheckString(1))
		L.Push(lua.LBool(ok && r.env.Earth.Markers().Remove(m)))
		return 1
	}))
	markersTable.RawSetString("list", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for _, m := range r.env.Earth.Markers().Markers() {
			entry := L.NewTable()
			entry.RawSetString("id", lua.LString(m.ID.String()))
			entry.RawSetString("name", lua.LString(m.Name))
			entry.RawSetString("latitude", lua.LNumber(m.Latitude))
			entry.RawSetString("longitude", lua.LNumber(m.Longitude))
			entry.RawSetString("selected", lua.LBool(m.Selected()))
			tbl.Append(entry)
		}
		L.Push(tbl)
		return 1
	}))

	flashFn := L.NewFunction(func(L *lua.LState) int {
		intent := flash.AddMessage{}
		switch v := L.Get(1).(type) {
		case *lua.LTable:
			payload := luaTableToMap(v)
			intent.Text = stringVal(payload, "text")
			if boolVal(payload, "error") {
				intent.Err = errors.New(intent.Text)
			}
			intent.NoTimeout = boolVal(payload, "sticky")
		default:
			intent.Text = L.CheckString(1)
		}
		r.cmds = append(r.cmds, flash.Cmd(intent))
		return 0
	})
	copyToClipboardFn := L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if err := r.env.WriteClipboard(text); err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LBool(true))
		L.Push(lua.LNil)
		return 2
	})

	root := L.NewTable()
	root.RawSetString("layers", layersTable)
	root.RawSetString("globe", globeTable)
	root.RawSetString("markers", markersTable)
	root.RawSetString("flash", flashFn)
	root.RawSetString("copy_to_clipboard", copyToClipboardFn)
	L.SetGlobal("explorer", root)

	L.SetGlobal("layers", layersTable)
	L.SetGlobal("globe", globeTable)
	L.SetGlobal("markers", markersTable)
	L.SetGlobal("flash", flashFn)
	L.SetGlobal("copy_to_clipboard", copyToClipboardFn)
}

func boolVal(payload map[string]any, key string) bool {
	if v, ok := payload[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func stringVal(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func luaTableToMap(tbl *lua.LTable) map[string]any {
	result := map[string]any{}
	tbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		result[key.String()] = luaValueToGo(value)
	})
	return result
}

func luaValueToGo(value lua.LValue) any {
	switch value.Type() {
	case lua.LTBool:
		return bool(value.(lua.LBool))
	case lua.LTNumber:
		return float64(value.(lua.LNumber))
	case lua.LTString:
		return value.String()
	case lua.LTTable:
		return luaTableToMap(value.(*lua.LTable))
	default:
		return nil
	}
}
