package cmd

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/Justype/qsubgraph/internal/config"
	"github.com/Justype/qsubgraph/internal/scheduler"
)

func TestConfigValueCompletion(t *testing.T) {
	opts := configValueCompletion("dialect")
	for _, name := range []string{"pbs", "sge"} {
		found := false
		for _, o := range opts {
			if o == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected completion option %q not present", name)
		}
	}
	if got := configValueCompletion("qsub_args"); got != nil {
		t.Errorf("configValueCompletion(qsub_args) = %v; want nil", got)
	}
}

func TestGetConfigEnvVars(t *testing.T) {
	vars := getConfigEnvVars()
	expected := make([]string, 0, len(config.Keys))
	for _, key := range config.Keys {
		expected = append(expected, "QSUBGRAPH_"+strings.ToUpper(key))
	}
	sort.Strings(expected)

	if len(vars) != len(expected) {
		t.Fatalf("got %d vars, expected %d", len(vars), len(expected))
	}
	for i, v := range vars {
		if v != expected[i] {
			t.Errorf("env var[%d] = %q, want %q", i, v, expected[i])
		}
	}
}

func TestValidateConfigValue(t *testing.T) {
	if err := validateConfigValue("dialect", "sge"); err != nil {
		t.Errorf("validateConfigValue(dialect, sge) error: %v", err)
	}
	if err := validateConfigValue("dialect", "slurm"); !errors.Is(err, scheduler.ErrUnknownDialect) {
		t.Errorf("validateConfigValue(dialect, slurm) = %v; want ErrUnknownDialect", err)
	}
	if err := validateConfigValue("qsub_args", "-q long"); err != nil {
		t.Errorf("validateConfigValue(qsub_args) error: %v", err)
	}
	if err := validateConfigValue("build.ncpus", "4"); err == nil {
		t.Error("validateConfigValue accepted an unknown key")
	}
}
