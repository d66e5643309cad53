package dag

import (
	"context"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/ctxlog"
)

// Build creates the prerequisite graph of cat. Every course becomes a node;
// every prerequisite that is itself a catalog code adds the edge
// prerequisite -> course. Prerequisites naming absent courses add nothing,
// repeated prerequisites add one edge and a course listing itself adds a
// self-edge.
func Build(ctx context.Context, cat *catalog.Catalog) *Graph {
	logger := ctxlog.FromContext(ctx)

	g := New()
	codes := cat.Codes()
	for _, code := range codes {
		g.AddNode(code)
	}

	dangling := 0
	for _, code := range codes {
		course, _ := cat.Get(code)
		for _, prereq := range course.Prereqs {
			if !g.Has(prereq) {
				dangling++
				continue
			}
			// Both endpoints were added above.
			_ = g.AddEdge(prereq, code)
		}
	}

	logger.Debug("Built prerequisite graph.", "nodes", g.Len(), "edges", g.EdgeCount(), "dangling_prereqs", dangling)
	return g
}
