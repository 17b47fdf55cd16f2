package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"cool-checker/diag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[project]
sources = ["main.cl", "/abs/lib.cl"]
log-level = "error"
halt-after-class = true
dump-types = true
layout-output = "out/layout.ll"
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		Sources:        []string{filepath.Join(dir, "main.cl"), "/abs/lib.cl"},
		LogLevel:       diag.LogLevelError,
		HaltAfterClass: true,
		DumpTypes:      true,
		LayoutOutput:   filepath.Join(dir, "out", "layout.ll"),
	}
	if diff := pretty.Diff(cfg, want); len(diff) > 0 {
		t.Errorf("config differs: %v", diff)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[project]\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := pretty.Diff(cfg, Default()); len(diff) > 0 {
		t.Errorf("empty project should give defaults: %v", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), FileName))
		if err == nil || !strings.Contains(err.Error(), "unable to open config file") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[project\nsources = 1"))
		if err == nil || !strings.Contains(err.Error(), "error parsing config file") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
