package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/courseplan/internal/catalog"
)

func mustCatalog(t *testing.T, courses ...catalog.Course) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(courses...)
	require.NoError(t, err)
	return cat
}

func TestBuild(t *testing.T) {
	// --- Arrange ---
	cat := mustCatalog(t,
		catalog.Course{Code: "CSCI100", Title: "Intro"},
		catalog.Course{Code: "CSCI101", Title: "Programming", Prereqs: []string{"CSCI100", "csci100", "PHYS999"}},
		catalog.Course{Code: "CSCI200", Title: "Data Structures", Prereqs: []string{"CSCI101", "MATH201"}},
		catalog.Course{Code: "MATH201", Title: "Discrete Mathematics"},
	)

	// --- Act ---
	g := Build(context.Background(), cat)

	// --- Assert ---
	assert.Equal(t, cat.Codes(), g.Codes())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, map[string]int{
		"CSCI100": 0,
		"CSCI101": 1,
		"CSCI200": 2,
		"MATH201": 0,
	}, g.InDegrees())

	dependents, err := g.Dependents("CSCI100")
	require.NoError(t, err)
	assert.Equal(t, []string{"CSCI101"}, dependents)

	assert.False(t, g.Has("PHYS999"), "dangling prerequisites never become nodes")
}

func TestBuild_EdgesOnlyBetweenCatalogCodes(t *testing.T) {
	cat := mustCatalog(t,
		catalog.Course{Code: "A1", Title: "A", Prereqs: []string{"X1", "Y1"}},
		catalog.Course{Code: "B1", Title: "B", Prereqs: []string{"A1", "Z1"}},
	)

	g := Build(context.Background(), cat)

	for _, code := range g.Codes() {
		assert.True(t, cat.Has(code))
		dependents, err := g.Dependents(code)
		require.NoError(t, err)
		for _, d := range dependents {
			assert.True(t, cat.Has(d))
		}
	}
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuild_SelfPrerequisite(t *testing.T) {
	cat := mustCatalog(t, catalog.Course{Code: "LOOP1", Title: "Loop", Prereqs: []string{"LOOP1"}})

	g := Build(context.Background(), cat)

	assert.Equal(t, map[string]int{"LOOP1": 1}, g.InDegrees())
	assert.Equal(t, []string{"LOOP1"}, g.FindCycle(nil))
}

func TestBuild_EmptyCatalog(t *testing.T) {
	g := Build(context.Background(), catalog.Empty())

	assert.Zero(t, g.Len())
	assert.Empty(t, g.InDegrees())
	assert.Empty(t, g.Codes())
}
