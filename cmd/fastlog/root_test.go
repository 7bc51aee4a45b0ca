package fastlog

import (
	"bytes"
	"path/filepath"
	"testing"
)

func resetFlags() {
	configPath = ""
	storageFlag = ""
	dataDirFlag = ""
	fastAt = ""
}

func TestRootHelp(t *testing.T) {
	resetFlags()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestFastLifecycleThroughCLI(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--data-dir", filepath.Join(dir, "data"),
		"--storage", "local",
	}

	run := func(args ...string) (string, error) {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs(append(append([]string{}, base...), args...))
		err := rootCmd.Execute()
		return buf.String(), err
	}

	if out, err := run("fast", "start"); err != nil {
		t.Fatalf("fast start: %v (%s)", err, out)
	}
	if _, err := run("fast", "start"); err == nil {
		t.Fatalf("expected second fast start to fail")
	}
	if out, err := run("fast", "status"); err != nil {
		t.Fatalf("fast status: %v (%s)", err, out)
	}
	if out, err := run("fast", "end"); err != nil {
		t.Fatalf("fast end: %v (%s)", err, out)
	}
	if _, err := run("fast", "end"); err == nil {
		t.Fatalf("expected fast end without active session to fail")
	}
}

func TestLogMealThroughCLI(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--data-dir", filepath.Join(dir, "data"),
		"--storage", "local",
		"log", "meal", "oatmeal", "--calories", "350",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("log meal: %v (%s)", err, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("350 kcal")) {
		t.Fatalf("expected calories in output, got %q", buf.String())
	}
}
