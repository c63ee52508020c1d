package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/reimage/internal/config"
)

// TestAnalyzeCmdFlags tests the analyze command's flag surface.
func TestAnalyzeCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	for _, name := range []string{"method", "output-text", "model", "timeout", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %q flag", name)
		}
	}

	if got := cmd.Flags().Lookup("method").DefValue; got != "json" {
		t.Errorf("method default = %q, want json", got)
	}
}

// TestAnalyzeCmdMissingAPIKey verifies that a missing credential fails
// before any work begins.
func TestAnalyzeCmdMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", "photo.png"})

	err := cmd.Execute()
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

// TestAnalyzeCmdRejectsUnknownMethod verifies method flag validation.
func TestAnalyzeCmdRejectsUnknownMethod(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", "--method", "yaml", "photo.png"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown method") {
		t.Fatalf("error = %v, want unknown method", err)
	}
}

// TestGenerateCmdArgs verifies the generate command's argument count.
func TestGenerateCmdArgs(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"generate", "only-one-arg"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for wrong argument count")
	}
}

// TestBatchCmdRequiredFlags verifies that batch refuses to run without
// its directories.
func TestBatchCmdRequiredFlags(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"batch"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing directory flags")
	}
}
