package ui

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/scripting"
	"github.com/emxsys/wmt-explorer/internal/session"
	"github.com/emxsys/wmt-explorer/internal/ui/common"
	"github.com/emxsys/wmt-explorer/internal/ui/flash"
	"github.com/emxsys/wmt-explorer/internal/ui/footer"
	"github.com/emxsys/wmt-explorer/internal/ui/helppage"
	"github.com/emxsys/wmt-explorer/internal/ui/layermenu"
)

const menuWidth = 32

// Options are the collaborators of the UI that tests replace.
type Options struct {
	// Session receives the viewpoint on quit; nil skips saving.
	Session session.Store
	Logger  *slog.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

type script struct {
	name    string
	binding key.Binding
	lua     string
}

type Model struct {
	*common.ViewNode
	config    *config.Config
	earth     *globe.Earth
	session   session.Store
	logger    *slog.Logger
	clipboard func(string) error
	keyMap    config.KeyMappings[key.Binding]
	scripts   []script
	layerMenu *layermenu.Model
	footer    *footer.Model
	flash     *flash.Model
	help      *helppage.Model
	globe     globeStyles
	quitting  bool
}

type triggerAutoRefreshMsg struct{}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("WMT Explorer"), m.layerMenu.Init(), m.scheduleAutoRefresh())
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.layout()
		return nil
	case triggerAutoRefreshMsg:
		return tea.Batch(m.scheduleAutoRefresh(), func() tea.Msg {
			return common.AutoRefreshMsg{}
		})
	case common.AutoRefreshMsg:
		m.earth.RefreshLayers()
		return nil
	case common.CloseViewMsg:
		m.help = nil
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return tea.Batch(m.flash.Update(msg), m.layerMenu.Update(msg))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.help != nil {
		return m.help.Update(msg)
	}
	if m.layerMenu.IsFiltering() {
		return m.layerMenu.Update(msg)
	}
	if key.Matches(msg, m.keyMap.Cancel) && m.flash.Any() {
		return m.flash.Update(flash.DismissOldest{})
	}
	zoom, pan := m.config.UI.ZoomIncrement, m.config.UI.PanIncrement
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m.quit()
	case key.Matches(msg, m.keyMap.ZoomIn):
		m.earth.Zoom(1 - zoom)
	case key.Matches(msg, m.keyMap.ZoomOut):
		m.earth.Zoom(1 + zoom)
	case key.Matches(msg, m.keyMap.PanUp):
		m.earth.PanToward(0, pan)
	case key.Matches(msg, m.keyMap.PanDown):
		m.earth.PanToward(180, pan)
	case key.Matches(msg, m.keyMap.PanLeft):
		m.earth.PanToward(-90, pan)
	case key.Matches(msg, m.keyMap.PanRight):
		m.earth.PanToward(90, pan)
	case key.Matches(msg, m.keyMap.ResetHeading):
		m.earth.ResetHeading()
	case key.Matches(msg, m.keyMap.ResetHeadingAndTilt):
		m.earth.ResetHeadingAndTilt()
	case key.Matches(msg, m.keyMap.ResetView):
		m.earth.Reset()
	case key.Matches(msg, m.keyMap.Refresh):
		n := m.earth.RefreshLayers()
		return flash.Cmd(flash.AddMessage{Text: fmt.Sprintf("Refreshed %d temporal layer(s)", n)})
	case key.Matches(msg, m.keyMap.CopyViewpoint):
		return m.copyViewpoint()
	case key.Matches(msg, m.keyMap.Help):
		bindings := make([]key.Binding, 0, len(m.scripts))
		for _, s := range m.scripts {
			bindings = append(bindings, s.binding)
		}
		m.help = helppage.New(m.keyMap, bindings)
	default:
		for _, s := range m.scripts {
			if key.Matches(msg, s.binding) {
				return m.runScript(s)
			}
		}
		return m.layerMenu.Update(msg)
	}
	return nil
}

func (m *Model) runScript(s script) tea.Cmd {
	m.logger.Info("running script", "script", s.name)
	cmd, err := scripting.Run(scripting.Env{Earth: m.earth, WriteClipboard: m.clipboard}, s.lua)
	if err != nil {
		m.logger.Error("script failed", "script", s.name, "err", err)
		return tea.Sequence(cmd, flash.Cmd(flash.AddMessage{Err: fmt.Errorf("%s: %w", s.name, err)}))
	}
	return cmd
}

func (m *Model) copyViewpoint() tea.Cmd {
	nav := m.earth.Navigator()
	text := fmt.Sprintf("%.6f, %.6f, %.0f", nav.Latitude, nav.Longitude, nav.Range)
	if vp := m.earth.Viewpoint(); vp.Target.Valid() {
		text = vp.String()
	}
	if err := m.clipboard(text); err != nil {
		return flash.Cmd(flash.AddMessage{Err: fmt.Errorf("copy viewpoint: %w", err)})
	}
	return flash.Cmd(flash.AddMessage{Text: "Copied " + text})
}

// quit saves the viewpoint so the next start opens where this one ended.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.layerMenu.Close()
	if m.session != nil {
		if err := session.SaveViewpoint(m.session, m.earth.Navigator()); err != nil {
			m.logger.Error("saving viewpoint", "err", err)
		}
	}
	return tea.Quit
}

func (m *Model) scheduleAutoRefresh() tea.Cmd {
	interval := m.config.UI.AutoRefreshInterval
	if interval > 0 {
		return tea.Tick(time.Duration(interval)*time.Second, func(time.Time) tea.Msg {
			return triggerAutoRefreshMsg{}
		})
	}
	return nil
}

func (m *Model) layout() {
	footerHeight := m.footer.Height
	bodyHeight := max(m.Height-footerHeight, 0)
	left := min(menuWidth, m.Width/2)
	m.layerMenu.SetFrame(cellbuf.Rect(0, 0, left, bodyHeight))
	m.footer.SetFrame(cellbuf.Rect(0, bodyHeight, m.Width, footerHeight))
	m.flash.SetFrame(cellbuf.Rect(0, 0, m.Width, bodyHeight))
}

func (m *Model) View() string {
	if m.quitting || m.Width == 0 {
		return ""
	}
	bodyHeight := m.flash.Height
	globeWidth := m.Width - m.layerMenu.Width
	right := renderGlobe(m.earth, m.globe, globeWidth, bodyHeight)
	if m.help != nil {
		right = lipgloss.Place(globeWidth, bodyHeight, lipgloss.Center, lipgloss.Center, m.help.View())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.layerMenu.View(), right)
	body = overlay(body, m.flash.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer.View())
}

// overlay draws each box over the lines of base at its position.
func overlay(base string, boxes []flash.Box) string {
	if len(boxes) == 0 {
		return base
	}
	lines := strings.Split(base, "\n")
	for _, box := range boxes {
		for i, content := range strings.Split(box.Content, "\n") {
			y := box.Rect.Min.Y + i
			if y < 0 || y >= len(lines) {
				continue
			}
			left := lipgloss.NewStyle().MaxWidth(box.Rect.Min.X).Render(lines[y])
			if pad := box.Rect.Min.X - lipgloss.Width(left); pad > 0 {
				left += strings.Repeat(" ", pad)
			}
			lines[y] = left + content
		}
	}
	return strings.Join(lines, "\n")
}

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	wrapper      struct {
		ui                 *Model
		scheduledNextFrame bool
		render             bool
		cachedFrame        string
	}
)

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

// Update coalesces renders to at most one per frame tick.
func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		w.render = true
		w.scheduledNextFrame = false
		return w, nil
	}
	cmd := w.ui.Update(msg)
	if !w.scheduledNextFrame {
		w.scheduledNextFrame = true
		return w, tea.Batch(cmd, tea.Tick(time.Millisecond*8, func(t time.Time) tea.Msg {
			return frameTickMsg{}
		}))
	}
	return w, cmd
}

func (w *wrapper) View() string {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	return w.cachedFrame
}

func NewUI(cfg *config.Config, earth *globe.Earth, opts Options) *Model {
	common.DefaultPalette.Update(cfg.UI.Colors)

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	writeClipboard := opts.Clipboard
	if writeClipboard == nil {
		writeClipboard = clipboard.WriteAll
	}

	keyMap := cfg.GetKeyMap()
	names := make([]string, 0, len(cfg.Scripts))
	for name := range cfg.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	scripts := make([]script, 0, len(names))
	for _, name := range names {
		s := cfg.Scripts[name]
		scripts = append(scripts, script{name: name, binding: s.Binding(name), lua: s.Lua})
	}

	helpKeys := []key.Binding{keyMap.Toggle, keyMap.Filter, keyMap.ZoomIn, keyMap.ZoomOut, keyMap.ResetView, keyMap.Refresh, keyMap.CopyViewpoint}
	for _, s := range scripts {
		helpKeys = append(helpKeys, s.binding)
	}
	helpKeys = append(helpKeys, keyMap.Help, keyMap.Quit)

	return &Model{
		ViewNode:  common.NewViewNode(0, 0),
		config:    cfg,
		earth:     earth,
		session:   opts.Session,
		logger:    logger,
		clipboard: writeClipboard,
		keyMap:    keyMap,
		scripts:   scripts,
		layerMenu: layermenu.New(earth.Registry(), keyMap),
		footer:    footer.New(earth, helpKeys),
		flash:     flash.New(),
		globe:     newGlobeStyles(),
	}
}

func New(cfg *config.Config, earth *globe.Earth, opts Options) tea.Model {
	return &wrapper{ui: NewUI(cfg, earth, opts)}
}
