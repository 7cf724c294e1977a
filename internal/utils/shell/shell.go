package shell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs a shell command string and returns its combined stdout.
type Executor interface {
	Exec(cmdStr string, envVal []string) (string, error)
}

// Default is the executor used by ExecCmd. Tests swap it for a MockExecutor.
var Default Executor = &hostExecutor{}

// ExecCmd runs cmdStr through the Default executor.
func ExecCmd(cmdStr string, envVal []string) (string, error) {
	return Default.Exec(cmdStr, envVal)
}

// IsCommandExist checks if a command is resolvable on the host.
func IsCommandExist(cmd string) bool {
	output, _ := Default.Exec("command -v "+cmd, nil)
	return strings.TrimSpace(output) != ""
}

type hostExecutor struct{}

func (hostExecutor) Exec(cmdStr string, envVal []string) (string, error) {
	shell := getShell()
	cmd := exec.Command(shell, "-c", cmdStr)
	cmd.Env = append(os.Environ(), envVal...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("command %q failed: %w: %s",
			cmdStr, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// getShell returns the preferred shell, falling back to /bin/sh if bash is not available
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

// MockCommand pairs a command substring with the canned result a
// MockExecutor returns for it.
type MockCommand struct {
	Pattern string
	Output  string
	Error   error
}

// MockExecutor satisfies Executor from a fixed command table.
type MockExecutor struct {
	Commands []MockCommand
	Calls    []string
}

// NewMockExecutor builds a MockExecutor over the given command table.
func NewMockExecutor(commands []MockCommand) *MockExecutor {
	return &MockExecutor{Commands: commands}
}

func (m *MockExecutor) Exec(cmdStr string, envVal []string) (string, error) {
	m.Calls = append(m.Calls, cmdStr)
	for _, mc := range m.Commands {
		if strings.Contains(cmdStr, mc.Pattern) {
			return mc.Output, mc.Error
		}
	}
	return "", fmt.Errorf("unexpected command for mock: %s", cmdStr)
}
