package present

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/loader"
)

func TestWriteHCL(t *testing.T) {
	// --- Arrange ---
	cat, err := catalog.New(
		catalog.Course{Code: "CSCI101", Title: `Programming in "C++"`, Prereqs: []string{"CSCI100", "PHYS999", "CSCI100"}},
		catalog.Course{Code: "CSCI100", Title: "Intro"},
	)
	require.NoError(t, err)

	// --- Act ---
	var out bytes.Buffer
	require.NoError(t, WriteHCL(&out, cat))

	// --- Assert ---
	assert.Contains(t, out.String(), `course "CSCI100" {`)
	assert.Contains(t, out.String(), `prereqs = ["CSCI100", "PHYS999", "CSCI100"]`)

	records, skipped, err := loader.ParseHCL(out.Bytes(), "export.hcl")
	require.NoError(t, err)
	assert.Empty(t, skipped)

	reloaded, report, err := loader.Load(records)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, cat.Courses(), reloaded.Courses())
}

func TestWriteHCL_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteHCL(&out, catalog.Empty()))
	assert.Empty(t, out.String())
}
