package common

import tea "github.com/charmbracelet/bubbletea"

type (
	CloseViewMsg        struct{}
	AutoRefreshMsg      struct{}
	CommandCompletedMsg struct {
		Output string
		Err    error
	}
)

func Close() tea.Msg {
	return CloseViewMsg{}
}

func CommandCompleted(output string, err error) tea.Cmd {
	return func() tea.Msg {
		return CommandCompletedMsg{Output: output, Err: err}
	}
}
