package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/emxsys/wmt-explorer/internal/app"
	"github.com/emxsys/wmt-explorer/internal/ui"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *app.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, args []string) error {
	flags, shouldExit, err := app.Parse(args, out)
	if err != nil || shouldExit {
		return err
	}

	a, err := app.Setup(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(
		ui.New(a.Config, a.Earth, ui.Options{Session: a.Session, Logger: a.Logger}),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		a.Logger.Error("program exited with error", "err", err)
		return err
	}
	return nil
}
