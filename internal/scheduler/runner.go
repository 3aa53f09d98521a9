package scheduler

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes the master submission script.
type Runner interface {
	// Run invokes shell with script as its only argument and the given
	// environment, returning combined stdout and stderr.
	Run(shell string, script string, env []string) (string, error)
}

// ShellRunner runs the script as a child process and blocks until it exits.
type ShellRunner struct{}

// Run executes `shell script` in the script's directory.
func (ShellRunner) Run(shell string, script string, env []string) (string, error) {
	cmd := exec.Command(shell, script)
	cmd.Env = env
	cmd.Dir = filepath.Dir(script)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())
	if err != nil {
		return output, NewInvocationError(shell+" "+script, output, err)
	}
	return output, nil
}
