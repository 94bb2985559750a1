// Package flash shows short notices in the bottom right corner of the body:
// results of key presses and scripts, and the errors they ran into.
package flash

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
)

const (
	noticeTimeout = 4 * time.Second
	// maxNotices bounds the stack; the oldest notice goes first.
	maxNotices = 5
)

type Intent interface {
	apply(*Model) tea.Cmd
}

// Cmd wraps a flash intent into a Tea command.
func Cmd(intent Intent) tea.Cmd {
	return func() tea.Msg {
		return intent
	}
}

type expireMsg struct {
	id uint64
}

type notice struct {
	id      uint64
	text    string
	err     error
	repeats int
}

func (n notice) same(text string, err error) bool {
	if (n.err == nil) != (err == nil) {
		return false
	}
	if err != nil {
		return n.err.Error() == err.Error()
	}
	return n.text == text
}

// Box is one rendered notice and where it goes on the body.
type Box struct {
	// Content may contain ANSI colour codes.
	Content string
	Rect    cellbuf.Rectangle
}

type Model struct {
	*common.ViewNode
	notices      []notice
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	lastId       uint64
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Intent:
		return msg.apply(m)
	case expireMsg:
		m.remove(msg.id)
	case common.CommandCompletedMsg:
		return AddMessage{Text: msg.Output, Err: msg.Err}.apply(m)
	}
	return nil
}

// View stacks the notices upwards from the bottom right corner, newest at
// the bottom. Notices that no longer fit are left out.
func (m *Model) View() []Box {
	var boxes []Box
	bottom := m.Height
	for i := len(m.notices) - 1; i >= 0; i-- {
		content := m.render(m.notices[i])
		w, h := lipgloss.Size(content)
		bottom -= h
		if bottom < 0 {
			break
		}
		boxes = append(boxes, Box{Content: content, Rect: cellbuf.Rect(max(m.Width-w, 0), bottom, w, h)})
	}
	for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
		boxes[i], boxes[j] = boxes[j], boxes[i]
	}
	return boxes
}

func (m *Model) render(n notice) string {
	text, style := n.text, m.successStyle
	if n.err != nil {
		text, style = n.err.Error(), m.errorStyle
	}
	if n.repeats > 0 {
		text += fmt.Sprintf(" (×%d)", n.repeats+1)
	}
	return style.Render(text)
}

// Any reports whether a notice is showing.
func (m *Model) Any() bool {
	return len(m.notices) > 0
}

// add shows a notice and returns its id. A repeat of the newest notice
// bumps its counter and gets a fresh id; blank notices are dropped and get 0.
func (m *Model) add(text string, err error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && err == nil {
		return 0
	}
	m.lastId++
	if last := len(m.notices) - 1; last >= 0 && m.notices[last].same(text, err) {
		m.notices[last].id = m.lastId
		m.notices[last].repeats++
		return m.lastId
	}
	m.notices = append(m.notices, notice{id: m.lastId, text: text, err: err})
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
	return m.lastId
}

func (m *Model) remove(id uint64) {
	for i, n := range m.notices {
		if n.id == id {
			m.notices = append(m.notices[:i:i], m.notices[i+1:]...)
			return
		}
	}
}

// AddMessage shows Text, or Err when it is set. Errors stay until they are
// dismissed; other notices expire unless NoTimeout is set.
type AddMessage struct {
	Text      string
	Err       error
	NoTimeout bool
}

func (a AddMessage) apply(m *Model) tea.Cmd {
	id := m.add(a.Text, a.Err)
	if id == 0 || a.Err != nil || a.NoTimeout {
		return nil
	}
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

// DismissOldest removes the notice that has been showing the longest.
type DismissOldest struct{}

func (DismissOldest) apply(m *Model) tea.Cmd {
	if len(m.notices) > 0 {
		m.notices = m.notices[1:]
	}
	return nil
}

func New() *Model {
	box := func(name string) lipgloss.Style {
		return common.DefaultPalette.GetBorder(name, lipgloss.RoundedBorder()).Padding(0, 1)
	}
	return &Model{
		ViewNode:     common.NewViewNode(0, 0),
		successStyle: box("success"),
		errorStyle:   box("error"),
	}
}
