package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	LoadDefaults()
	if Global.Interpreter != "bash" {
		t.Errorf("Interpreter = %q; want bash", Global.Interpreter)
	}
	if Global.SubmitBin != "qsub" {
		t.Errorf("SubmitBin = %q; want qsub", Global.SubmitBin)
	}
	if Global.Dialect != "" {
		t.Errorf("Dialect = %q; want empty (auto-detect)", Global.Dialect)
	}
}

func TestLoadFromViperAppliesFileAndEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	cfg := "dialect: sge\nqsub_args: -q long\ninterpreter: /usr/bin/python3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QSUBGRAPH_SUBMIT_BIN", "/opt/sge/bin/qsub")

	viper.SetConfigFile(filepath.Join(dir, "config.yaml"))
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	setDefaults()
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	LoadDefaults()
	LoadFromViper()

	if Global.Dialect != "sge" {
		t.Errorf("Dialect = %q; want sge", Global.Dialect)
	}
	if Global.QsubArgs != "-q long" {
		t.Errorf("QsubArgs = %q; want \"-q long\"", Global.QsubArgs)
	}
	if Global.Interpreter != "/usr/bin/python3" {
		t.Errorf("Interpreter = %q; want /usr/bin/python3", Global.Interpreter)
	}
	if Global.SubmitBin != "/opt/sge/bin/qsub" {
		t.Errorf("SubmitBin = %q; want env override", Global.SubmitBin)
	}
	if Global.Shell != "bash" {
		t.Errorf("Shell = %q; want default bash", Global.Shell)
	}
}

func TestSaveConfigTo(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("qsub_args", "-A proj42")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveConfigTo(path); err != nil {
		t.Fatalf("SaveConfigTo failed: %v", err)
	}

	viper.Reset()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("reading saved config failed: %v", err)
	}
	if got := viper.GetString("qsub_args"); got != "-A proj42" {
		t.Errorf("saved qsub_args = %q; want \"-A proj42\"", got)
	}
}

func TestIsKnownKey(t *testing.T) {
	for _, key := range Keys {
		if !IsKnownKey(key) {
			t.Errorf("IsKnownKey(%q) = false", key)
		}
	}
	if IsKnownKey("build.ncpus") {
		t.Error("IsKnownKey accepted an unknown key")
	}
}
