package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/courseplan/internal/cli"
)

func TestRun_Order(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "courses.csv")
	err := os.WriteFile(filePath, []byte("CSCI101,Programming,CSCI100\nCSCI100,Intro\n"), 0600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err = run(context.Background(), strings.NewReader(""), out, logs, []string{"--catalog", filePath, "order"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Recommended Course Order:\n1. CSCI100 - Intro\n2. CSCI101 - Programming\n", out.String())
	assert.Contains(t, logs.String(), "Catalog loaded.")
}

func TestRun_CycleExitCode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := filepath.Join(t.TempDir(), "loop.csv")
	require.NoError(t, os.WriteFile(filePath, []byte("A,Alpha,B\nB,Beta,A\n"), 0600))

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"order", "-c", filePath})

	// --- Assert ---
	require.Error(t, err)
	assert.Equal(t, cli.ExitCycle, cli.ExitCode(err))
}

func TestRun_Menu(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(context.Background(), strings.NewReader("9\n"), out, &bytes.Buffer{}, []string{"menu"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Welcome to the Course Planner!\n"))
	assert.True(t, strings.HasSuffix(out.String(), "Exiting program. Goodbye!\n"))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestRun_MissingCatalog(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{},
		[]string{"list", "--catalog", filepath.Join(t.TempDir(), "missing.csv")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog source unavailable")
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}
