package scheduler

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/dag"
)

// ErrCycleDetected marks an ordering that could not place every course
// because of a prerequisite cycle.
var ErrCycleDetected = errors.New("scheduler: circular prerequisite dependency detected")

// CycleError describes an incomplete ordering. It matches ErrCycleDetected
// with errors.Is.
type CycleError struct {
	// Blocked lists every course that could not be placed, ascending.
	Blocked []string
	// Cycle is one loop among the blocked courses.
	Cycle []string
}

func (e *CycleError) Error() string {
	var b strings.Builder
	b.WriteString(ErrCycleDetected.Error())
	if len(e.Cycle) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Cycle, " -> "))
		b.WriteString(" -> ")
		b.WriteString(e.Cycle[0])
	}
	fmt.Fprintf(&b, " (%d course(s) blocked)", len(e.Blocked))
	return b.String()
}

func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// Result is the outcome of Order.
type Result struct {
	// Order lists placed courses; every course appears after all of its
	// prerequisites that are also placed.
	Order []string
	// Complete is true iff every course of the graph was placed.
	Complete bool
	// Blocked lists, ascending, the courses that could not be placed. It is
	// empty when Complete is true.
	Blocked []string
	// Cycle is one prerequisite loop among Blocked, or nil.
	Cycle []string
}

// Err returns a *CycleError when the result is incomplete, nil otherwise.
func (r Result) Err() error {
	if r.Complete {
		return nil
	}
	return &CycleError{Blocked: r.Blocked, Cycle: r.Cycle}
}

// Order computes a deterministic topological order of g. It reads g and
// never modifies it.
func Order(ctx context.Context, g *dag.Graph) Result {
	logger := ctxlog.FromContext(ctx)

	inDegree := g.InDegrees()
	ready := make(readyQueue, 0, len(inDegree))
	for code, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, code)
		}
	}
	heap.Init(&ready)

	order := make([]string, 0, len(inDegree))
	for ready.Len() > 0 {
		code := heap.Pop(&ready).(string)
		order = append(order, code)

		// code is a node of g, so the lookup cannot fail.
		dependents, _ := g.Dependents(code)
		for _, next := range dependents {
			inDegree[next]--
			if inDegree[next] == 0 {
				heap.Push(&ready, next)
			}
		}
	}

	result := Result{Order: order, Complete: len(order) == g.Len()}
	if result.Complete {
		logger.Debug("Computed course order.", "courses", len(order))
		return result
	}

	placed := make(map[string]bool, len(order))
	for _, code := range order {
		placed[code] = true
	}
	for _, code := range g.Codes() {
		if !placed[code] {
			result.Blocked = append(result.Blocked, code)
		}
	}
	result.Cycle = g.FindCycle(result.Blocked)

	logger.Warn("Circular prerequisite dependency detected.",
		"placed", len(order),
		"blocked", len(result.Blocked),
		"cycle", strings.Join(result.Cycle, " -> "),
	)
	return result
}
