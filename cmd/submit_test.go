package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Justype/qsubgraph/internal/scheduler"
)

func TestResolveDialectByName(t *testing.T) {
	d, err := resolveDialect("sge", nil)
	if err != nil {
		t.Fatalf("resolveDialect(sge) error: %v", err)
	}
	if d.Name() != "SGE" {
		t.Errorf("resolveDialect(sge) = %s; want SGE", d.Name())
	}

	if _, err := resolveDialect("lsf", nil); !errors.Is(err, scheduler.ErrUnknownDialect) {
		t.Errorf("resolveDialect(lsf) = %v; want ErrUnknownDialect", err)
	}
}

func TestSubmitCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	scriptsDir := filepath.Join(dir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"fetch.sh", "align.sh"} {
		if err := os.WriteFile(filepath.Join(scriptsDir, name), []byte("echo ok\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	const payload = `
name: cli-test
nodes:
  - name: align
    script: scripts/align.sh
    depends_on: [fetch]
  - name: fetch
    script: scripts/fetch.sh
`
	graphPath := filepath.Join(dir, "graph.yaml")
	if err := os.WriteFile(graphPath, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	defer func() { submitDryRun = false }()
	rootCmd.SetArgs([]string{"submit", graphPath, "--dialect", "sge", "--dry-run", "--quiet"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(scriptsDir, scheduler.MasterScriptName))
	if err != nil {
		t.Fatalf("master script not written: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("master script has %d lines; want 4:\n%s", len(lines), content)
	}
	if lines[1] != "set -eo pipefail" {
		t.Errorf("master script should stop on the first failed submit, got: %s", lines[1])
	}
	if !strings.Contains(lines[2], "batchscript_fetch.sh") {
		t.Errorf("first submission should be fetch, got: %s", lines[2])
	}
	if !strings.Contains(lines[3], "-hold_jid ${job00000} -N job00001") {
		t.Errorf("align should hold on fetch, got: %s", lines[3])
	}
}
