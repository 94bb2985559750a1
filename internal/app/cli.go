package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Flags are the command-line settings.
type Flags struct {
	ConfigPath  string
	SessionPath string
	LogFile     string
	LogLevel    string
	LogFormat   string
}

// Parse processes command-line arguments. The boolean result is true when the
// program should exit cleanly, e.g. after -help.
func Parse(args []string, output io.Writer) (*Flags, bool, error) {
	fs := flag.NewFlagSet("wmt-explorer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
WMT Explorer - wildfire management globe explorer for the terminal.

Usage:
  wmt-explorer [options]

Options:
`)
		fs.PrintDefaults()
	}

	dir := defaultDir()
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", filepath.Join(dir, "config.toml"), "Path to the TOML config file. A missing file means defaults.")
	fs.StringVar(&f.SessionPath, "session", filepath.Join(dir, "session.toml"), "Path to the session file holding the last viewpoint. Empty disables it.")
	fs.StringVar(&f.LogFile, "log-file", "", "Append logs to this file. Logs are discarded when empty.")
	fs.StringVar(&f.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&f.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	f.LogFormat = strings.ToLower(f.LogFormat)
	if f.LogFormat != "text" && f.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	f.LogLevel = strings.ToLower(f.LogLevel)
	switch f.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return f, false, nil
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "wmt-explorer")
}
