package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrimExt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/work/batch/node_a.sh", "node_a"},
		{"/work/batch/pyscript_node.py", "pyscript_node"},
		{"/work/batch/archive.tar.gz", "archive.tar"},
		{"/work/batch/noext", "noext"},
		{"relative/dir/x.sh", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TrimExt(tt.input); got != tt.want {
				t.Errorf("TrimExt(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsYaml(t *testing.T) {
	cases := map[string]bool{
		"graph.yaml": true,
		"graph.YML":  true,
		"graph.json": false,
		"graph":      false,
	}
	for input, want := range cases {
		if got := IsYaml(input); got != want {
			t.Errorf("IsYaml(%q) = %v; want %v", input, got, want)
		}
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "header.tmpl")
	if err := os.WriteFile(file, []byte("#!/bin/bash\n"), PermFile); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Errorf("FileExists(%q) = false; want true", file)
	}
	if FileExists(dir) {
		t.Errorf("FileExists(%q) = true for a directory", dir)
	}
	if FileExists("") {
		t.Error("FileExists(\"\") = true; want false")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists reported a missing file")
	}
	if !DirExists(dir) {
		t.Errorf("DirExists(%q) = false; want true", dir)
	}

	nested := filepath.Join(dir, "a", "b")
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(nested) {
		t.Errorf("EnsureDir did not create %s", nested)
	}
}
