package planner

import (
	"context"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/dag"
	"github.com/specialistvlad/courseplan/internal/scheduler"
)

// Entry is a course code with its title.
type Entry struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
}

// Prereq is a prerequisite as shown in a detail view. Known is false when
// the code does not name a course of the catalog; Title is then empty.
type Prereq struct {
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Known bool   `json:"known" yaml:"known"`
}

// Detail is the full view of one course.
type Detail struct {
	Code    string   `json:"code" yaml:"code"`
	Title   string   `json:"title" yaml:"title"`
	Prereqs []Prereq `json:"prereqs" yaml:"prereqs"`
}

// Plan is a recommended study order.
type Plan struct {
	// Courses is the order itself. When Complete is false it is the valid
	// prefix that could be placed before the cycle.
	Courses  []Entry `json:"courses" yaml:"courses"`
	Complete bool    `json:"complete" yaml:"complete"`
	// Blocked lists the courses left out because of a cycle.
	Blocked []string `json:"blocked,omitempty" yaml:"blocked,omitempty"`
	// Cycle is one prerequisite loop among Blocked.
	Cycle []string `json:"cycle,omitempty" yaml:"cycle,omitempty"`

	err error
}

// Err returns an error matching scheduler.ErrCycleDetected when the plan is
// incomplete, nil otherwise.
func (p Plan) Err() error {
	return p.err
}

// ListSorted returns every course ascending by code.
func ListSorted(cat *catalog.Catalog) []Entry {
	courses := cat.Courses()
	entries := make([]Entry, 0, len(courses))
	for _, c := range courses {
		entries = append(entries, Entry{Code: c.Code, Title: c.Title})
	}
	return entries
}

// Lookup normalizes rawQuery and returns the details of the matching
// course. A query that matches nothing returns an error wrapping
// catalog.ErrNotFound. Prerequisites are listed in catalog order, repeats
// included.
func Lookup(cat *catalog.Catalog, rawQuery string) (Detail, error) {
	course, err := cat.Lookup(rawQuery)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{
		Code:    course.Code,
		Title:   course.Title,
		Prereqs: make([]Prereq, 0, len(course.Prereqs)),
	}
	for _, code := range course.Prereqs {
		p := Prereq{Code: code}
		if pre, ok := cat.Get(code); ok {
			p.Title = pre.Title
			p.Known = true
		}
		detail.Prereqs = append(detail.Prereqs, p)
	}
	return detail, nil
}

// RecommendedOrder builds the prerequisite graph of cat and orders it.
func RecommendedOrder(ctx context.Context, cat *catalog.Catalog) Plan {
	result := scheduler.Order(ctx, dag.Build(ctx, cat))

	plan := Plan{
		Courses:  make([]Entry, 0, len(result.Order)),
		Complete: result.Complete,
		Blocked:  result.Blocked,
		Cycle:    result.Cycle,
		err:      result.Err(),
	}
	for _, code := range result.Order {
		course, _ := cat.Get(code)
		plan.Courses = append(plan.Courses, Entry{Code: code, Title: course.Title})
	}
	return plan
}
