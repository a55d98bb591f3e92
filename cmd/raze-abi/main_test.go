package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/raze/abi"
	"github.com/framegrace/raze/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFingerprintCommand(t *testing.T) {
	out, err := run(t, "fingerprint")
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if strings.TrimSpace(out) != fmt.Sprintf("%08x", core.Fingerprint()) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGenWritesFilesAndCheckPasses(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "gen", "c", "rust", "--out", dir); err != nil {
		t.Fatalf("gen: %v", err)
	}
	for _, name := range []string{"raze.h", "raze.rs"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	out, err := run(t, "check", "--lang", "c", filepath.Join(dir, "raze.h"))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Fatalf("unexpected check output %q", out)
	}
}

func TestCheckReportsDriftWithDiff(t *testing.T) {
	src, _ := abi.Generate(abi.LangZig)
	src = strings.Replace(src, "resize = 3,", "resize = 7,", 1)
	path := filepath.Join(t.TempDir(), "contract.zig")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "check", "--diff", path)
	if !errors.Is(err, errDrift) {
		t.Fatalf("expected drift error, got %v", err)
	}
	if !strings.Contains(out, "eventkindresize: value is 7, want 3") {
		t.Fatalf("drift not listed:\n%s", out)
	}
	if !strings.Contains(out, "+     resize = 7,") {
		t.Fatalf("diff missing:\n%s", out)
	}
}

func TestGenPlainOutput(t *testing.T) {
	out, err := run(t, "gen", "ada", "--color", "never")
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	want, _ := abi.Generate(abi.LangAda)
	if out != want {
		t.Fatalf("plain output differs from generator")
	}
	if _, err := run(t, "gen", "cobol"); !errors.Is(err, abi.ErrUnknownLanguage) {
		t.Fatalf("expected unknown language, got %v", err)
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := run(t, "layout")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, s := range []string{"TuiState", "key_code", "BackTab"} {
		if !strings.Contains(out, s) {
			t.Fatalf("layout output missing %q", s)
		}
	}
}
