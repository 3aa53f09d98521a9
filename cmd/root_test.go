package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Justype/qsubgraph/internal/scheduler"
	"github.com/Justype/qsubgraph/internal/utils"
)

func captureConsole(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	oldOut, oldErr, oldQuiet := utils.Stdout, utils.Stderr, utils.QuietMode
	utils.Stdout, utils.Stderr, utils.QuietMode = &stdout, &stderr, false
	t.Cleanup(func() {
		utils.Stdout, utils.Stderr, utils.QuietMode = oldOut, oldErr, oldQuiet
	})
	return &stdout, &stderr
}

func TestPrintErrorShowsWrappedInvocationOutput(t *testing.T) {
	stdout, stderr := captureConsole(t)

	ie := scheduler.NewInvocationError("bash submit_jobs.sh", "qsub: Unknown queue", errors.New("exit status 1"))
	printError(fmt.Errorf("submit graph: %w", ie))

	if !strings.Contains(stderr.String(), "Submission failed: bash submit_jobs.sh") {
		t.Errorf("missing submission failure line:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "\nqsub: Unknown queue\n") {
		t.Errorf("scheduler output should be printed on its own line:\n%s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "qdel") {
		t.Errorf("missing qdel hint:\n%s", stdout.String())
	}
}

func TestPrintErrorPlain(t *testing.T) {
	stdout, stderr := captureConsole(t)

	printError(errors.New("graph: name is required"))

	if !strings.Contains(stderr.String(), "graph: name is required") {
		t.Errorf("missing error message:\n%s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("plain errors should not print hints:\n%s", stdout.String())
	}
}
