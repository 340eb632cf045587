package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/lint"
)

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		env     string
		want    zerolog.Level
	}{
		{name: "default", want: zerolog.WarnLevel},
		{name: "verbose", verbose: true, want: zerolog.DebugLevel},
		{name: "env", env: "info", want: zerolog.InfoLevel},
		{name: "verbose wins over env", verbose: true, env: "error", want: zerolog.DebugLevel},
		{name: "bad env ignored", env: "loud", want: zerolog.WarnLevel},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getenv := func(k string) string {
				if k == EnvLogLevel {
					return tc.env
				}
				return ""
			}
			got := newLogger(&bytes.Buffer{}, tc.verbose, getenv).GetLevel()
			if got != tc.want {
				t.Fatalf("level got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFixMessage(t *testing.T) {
	t.Parallel()

	linter := lint.New(lint.ConventionalRules())
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "already valid", raw: "fix: handle nil", want: "fix: handle nil", wantOK: true},
		{name: "case and period", raw: "feat: Add thing.", want: "feat: add thing", wantOK: true},
		{name: "breaking marker kept", raw: "feat!: Drop X", want: "feat!: drop X", wantOK: true},
		{name: "no header", raw: "just some words", want: "just some words", wantOK: false},
		{name: "unknown type", raw: "feature: add x", want: "feature: add x", wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := fixMessage(context.Background(), linter, tc.raw, 3)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("fixMessage(%q) got (%q, %v) want (%q, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestReadMessage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	if err := os.WriteFile(path, []byte("feat: from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readMessage(strings.NewReader("ignored"), []string{path})
	if err != nil || got != "feat: from file\n" {
		t.Fatalf("file got (%q, %v)", got, err)
	}

	got, err = readMessage(strings.NewReader("fix: from stdin"), nil)
	if err != nil || got != "fix: from stdin" {
		t.Fatalf("stdin got (%q, %v)", got, err)
	}

	if _, err := readMessage(nil, []string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ok := report(&buf, lint.Result{Valid: false, Errors: []string{"subject may not be empty"}, Warnings: []string{"body must have leading blank line"}})
	if ok {
		t.Fatalf("report should return false for an invalid result")
	}
	out := buf.String()
	if !strings.Contains(out, "subject may not be empty") || !strings.Contains(out, "body must have leading blank line") {
		t.Fatalf("report output missing findings: %q", out)
	}
}

func TestShowConfig(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	cfg := config.DefaultConfig()
	cfg.Provider = "anthropic"
	if err := showConfig(cmd, "/tmp/czai/config.yaml", cfg); err != nil {
		t.Fatalf("showConfig: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Config file: /tmp/czai/config.yaml", "provider: anthropic", "config_version: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config", "lint", "version"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered", name)
		}
	}
	for _, flag := range []string{"dry-run", "manual", "all", "provider", "model"} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Fatalf("flag --%s missing", flag)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("v1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "czai v1.2.3\n" {
		t.Fatalf("version output got %q want %q", got, "czai v1.2.3\n")
	}
}
