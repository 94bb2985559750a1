// Package test holds helpers for driving bubbletea models in unit tests.
package test

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// SimulateModel feeds first to model and keeps running every command the
// model returns until none are left. Observers see each message before the
// model does.
func SimulateModel[T interface {
	Update(tea.Msg) tea.Cmd
}](model T, first tea.Cmd, observers ...func(tea.Msg)) {
	drainCmds(first, func(msg tea.Msg) tea.Cmd {
		return model.Update(msg)
	}, observers...)
}

// Collect runs cmd and every command it batches or sequences, and returns
// the resulting messages without applying them to any model.
func Collect(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	drainCmds(cmd, func(msg tea.Msg) tea.Cmd {
		msgs = append(msgs, msg)
		return nil
	})
	return msgs
}

// Type sends one rune key press per rune of runes.
func Type(runes string) tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range runes {
		cmds = append(cmds, keyCmd(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
	return tea.Sequence(cmds...)
}

// Press sends a special key such as tea.KeyEnter.
func Press(key tea.KeyType) tea.Cmd {
	return keyCmd(tea.KeyMsg{Type: key})
}

// Keys sends a sequence of key presses named the way config key bindings
// name them ("up", "esc", "ctrl+r", " ", "j").
func Keys(names ...string) tea.Cmd {
	var cmds []tea.Cmd
	for _, name := range names {
		cmds = append(cmds, keyCmd(KeyMsg(name)))
	}
	return tea.Sequence(cmds...)
}

// KeyMsg builds the tea.KeyMsg whose String() is name.
func KeyMsg(name string) tea.KeyMsg {
	switch name {
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	for t, s := range specialKeys {
		if s == name {
			return tea.KeyMsg{Type: t}
		}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

var specialKeys = map[tea.KeyType]string{
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyShiftUp:   "shift+up",
	tea.KeyShiftDown: "shift+down",
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "esc",
	tea.KeyTab:       "tab",
	tea.KeyHome:      "home",
	tea.KeyCtrlC:     "ctrl+c",
	tea.KeyCtrlR:     "ctrl+r",
	tea.KeyBackspace: "backspace",
}

func keyCmd(msg tea.KeyMsg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func drainCmds(first tea.Cmd, apply func(tea.Msg) tea.Cmd, observers ...func(tea.Msg)) {
	queue := []tea.Cmd{first}

	for len(queue) > 0 {
		var cmd tea.Cmd
		cmd, queue = queue[0], queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		if msg == nil {
			continue
		}

		switch v := msg.(type) {
		case cursor.BlinkMsg:
			// Ignore cursor blink messages.
		case tea.BatchMsg:
			queue = append(queue, v...)
			continue
		default:
			if slice, ok := asCmdSlice(msg); ok {
				queue = append(queue, slice...)
				continue
			}
			for _, observe := range observers {
				observe(v)
			}
			if next := apply(v); next != nil {
				queue = append(queue, next)
			}
		}
	}
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// asCmdSlice returns the contents if msg is any named slice whose elements are tea.Cmd.
func asCmdSlice(msg tea.Msg) ([]tea.Cmd, bool) {
	val := reflect.ValueOf(msg)
	if val.Kind() != reflect.Slice || !val.Type().Elem().AssignableTo(cmdType) {
		return nil, false
	}
	out := make([]tea.Cmd, val.Len())
	for i := 0; i < val.Len(); i++ {
		out[i] = val.Index(i).Interface().(tea.Cmd)
	}
	return out, true
}
