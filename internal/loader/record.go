package loader

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/coursecode"
)

var (
	// ErrInvalidRecord marks a record that was skipped: a malformed line or a
	// course code that normalizes to empty.
	ErrInvalidRecord = errors.New("loader: invalid record")

	// ErrSourceUnavailable marks a catalog source that could not be opened,
	// read or parsed.
	ErrSourceUnavailable = errors.New("loader: catalog source unavailable")
)

// Record is one raw course record as read from a source, before
// normalization.
type Record struct {
	Source  string
	Line    int
	Code    string
	Title   string
	Prereqs []string
}

// Location returns "source:line" for messages.
func (r Record) Location() string {
	return location(r.Source, r.Line)
}

// Skipped identifies a record that was not loaded and why.
type Skipped struct {
	Source string
	Line   int
	Err    error
}

// Location returns "source:line" for messages.
func (s Skipped) Location() string {
	return location(s.Source, s.Line)
}

func (s Skipped) String() string {
	return s.Location() + ": " + s.Err.Error()
}

// Report summarizes a load.
type Report struct {
	// Records is the number of records accepted, including ones later
	// overwritten by a record with the same code.
	Records int
	// Loaded is the number of distinct courses in the resulting catalog.
	Loaded int
	// Skipped lists every record that was rejected, in source order.
	Skipped []Skipped
}

// Load builds a catalog from records. Records whose code normalizes to
// empty are skipped with ErrInvalidRecord; the rest are inserted in order so
// that a later record replaces an earlier one with the same code. An error
// means the catalog rejected a record that passed validation.
func Load(records []Record) (*catalog.Catalog, Report, error) {
	var report Report
	courses := make([]catalog.Course, 0, len(records))

	for _, r := range records {
		if err := validateCode(r.Code); err != nil {
			report.Skipped = append(report.Skipped, Skipped{Source: r.Source, Line: r.Line, Err: err})
			continue
		}
		courses = append(courses, catalog.Course{Code: r.Code, Title: r.Title, Prereqs: r.Prereqs})
	}

	cat, err := catalog.New(courses...)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to build catalog: %w", err)
	}

	report.Records = len(courses)
	report.Loaded = cat.Len()
	return cat, report, nil
}

func validateCode(raw string) error {
	if !coursecode.Valid(raw) {
		return fmt.Errorf("%w: course code %q is empty after normalization", ErrInvalidRecord, raw)
	}
	return nil
}

func location(source string, line int) string {
	if line <= 0 {
		return source
	}
	return fmt.Sprintf("%s:%d", source, line)
}
