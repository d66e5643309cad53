package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/courseplan/internal/coursecode"
)

var (
	// ErrNotFound is returned by Lookup when the normalized query is not a
	// code in the catalog. It is a normal outcome, not a fault.
	ErrNotFound = errors.New("catalog: course not found")

	// ErrEmptyCode is returned by New for a course whose code normalizes to
	// an empty string.
	ErrEmptyCode = errors.New("catalog: empty course code")
)

// Course is one catalog entry.
type Course struct {
	// Code is the normalized identifier and the catalog key.
	Code string
	// Title is free display text and is never normalized.
	Title string
	// Prereqs are normalized prerequisite codes in input order. They may
	// reference codes that are not in the catalog and may repeat.
	Prereqs []string
}

// clone returns a copy of c that shares no memory with it.
func (c Course) clone() Course {
	c.Prereqs = slices.Clone(c.Prereqs)
	return c
}

// Catalog maps normalized course codes to courses.
type Catalog struct {
	courses map[string]Course
	codes   []string // sorted ascending
}

// Empty returns a catalog with no courses.
func Empty() *Catalog {
	return &Catalog{courses: map[string]Course{}}
}

// New builds a catalog from courses in order. Codes and prerequisites are
// normalized; prerequisites that normalize to empty are dropped. A course
// with the same code as an earlier one replaces it. New fails without
// building anything if any course code normalizes to empty.
func New(courses ...Course) (*Catalog, error) {
	c := &Catalog{courses: make(map[string]Course, len(courses))}

	for i, in := range courses {
		code := coursecode.Normalize(in.Code)
		if code == "" {
			return nil, fmt.Errorf("course #%d %q: %w", i+1, in.Code, ErrEmptyCode)
		}

		prereqs := make([]string, 0, len(in.Prereqs))
		for _, p := range in.Prereqs {
			if norm := coursecode.Normalize(p); norm != "" {
				prereqs = append(prereqs, norm)
			}
		}

		c.courses[code] = Course{Code: code, Title: in.Title, Prereqs: prereqs}
	}

	c.codes = make([]string, 0, len(c.courses))
	for code := range c.courses {
		c.codes = append(c.codes, code)
	}
	slices.Sort(c.codes)

	return c, nil
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Has reports whether code, which must already be normalized, is a key.
func (c *Catalog) Has(code string) bool {
	_, ok := c.courses[code]
	return ok
}

// Get returns the course stored under the normalized code.
func (c *Catalog) Get(code string) (Course, bool) {
	course, ok := c.courses[code]
	if !ok {
		return Course{}, false
	}
	return course.clone(), true
}

// Lookup normalizes rawQuery and returns the matching course, or
// ErrNotFound.
func (c *Catalog) Lookup(rawQuery string) (Course, error) {
	code := coursecode.Normalize(rawQuery)
	course, ok := c.Get(code)
	if !ok {
		return Course{}, fmt.Errorf("%q: %w", rawQuery, ErrNotFound)
	}
	return course, nil
}

// Codes returns every code in ascending order.
func (c *Catalog) Codes() []string {
	return slices.Clone(c.codes)
}

// Courses returns every course in ascending code order.
func (c *Catalog) Courses() []Course {
	out := make([]Course, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.courses[code].clone())
	}
	return out
}
