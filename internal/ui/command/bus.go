package command

import (
	"errors"
	"os/exec"

	"github.com/atomicstack/keyring-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes an external program run that takes over the terminal.
type Request struct {
	Label   string
	Program string
	Args    []string
}

// ExitMsg reports the end of a program run. Launched is false when the
// program could not be started at all.
type ExitMsg struct {
	Request  Request
	Err      error
	Launched bool
}

// Executor hands a command to the terminal and reports its completion through
// the callback. tea.ExecProcess is the production executor.
type Executor func(*exec.Cmd, tea.ExecCallback) tea.Cmd

// Bus coordinates the execution of external programs.
type Bus struct {
	exec Executor
}

// New initialises a bus that suspends the program while a process runs.
func New() *Bus {
	return &Bus{exec: tea.ExecProcess}
}

// NewWithExecutor initialises a bus with a custom executor.
func NewWithExecutor(exec Executor) *Bus {
	if exec == nil {
		exec = tea.ExecProcess
	}
	return &Bus{exec: exec}
}

// Execute wraps a program run into a Bubble Tea command while emitting trace
// logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Process.Start(req.Program, req.Args)
	cmd := exec.Command(req.Program, req.Args...) //nolint:gosec
	return b.exec(cmd, func(err error) tea.Msg {
		events.Process.Exit(req.Program, err)
		return ExitMsg{Request: req, Err: err, Launched: !IsLaunchError(err)}
	})
}

// IsLaunchError reports whether err means the program never ran, as opposed
// to running and exiting with a failure status.
func IsLaunchError(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}
