package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/courseplan/internal/planner"
)

// Format selects how a Printer renders values.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Printer writes query results to w in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter returns a Printer writing to w. An empty format means text.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == "" {
		format = FormatText
	}
	return &Printer{w: w, format: format}
}

// messageView is the structured form of a plain status message.
type messageView struct {
	Error string `json:"error" yaml:"error"`
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

// NoData reports that no catalog is loaded.
func (p *Printer) NoData() error {
	if p.format == FormatText {
		return p.lines("No data loaded.")
	}
	return p.encode(messageView{Error: "no data loaded"})
}

// NotFound reports that query matched no course.
func (p *Printer) NotFound(query string) error {
	if p.format == FormatText {
		return p.lines("Course not found.")
	}
	return p.encode(messageView{Error: "course not found", Query: query})
}

// CourseList prints entries in the order given.
func (p *Printer) CourseList(entries []planner.Entry) error {
	if p.format != FormatText {
		return p.encode(entries)
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Course List:")
	for _, e := range entries {
		lines = append(lines, e.Code+", "+e.Title)
	}
	return p.lines(lines...)
}

// CourseDetail prints one course and its prerequisites. Prerequisites that
// are not in the catalog are shown with "(title unavailable)".
func (p *Printer) CourseDetail(d planner.Detail) error {
	if p.format != FormatText {
		return p.encode(d)
	}

	if len(d.Prereqs) == 0 {
		return p.lines(d.Code+", "+d.Title, "Prerequisites: None")
	}

	parts := make([]string, 0, len(d.Prereqs))
	for _, pre := range d.Prereqs {
		if pre.Known {
			parts = append(parts, pre.Code+", "+pre.Title)
		} else {
			parts = append(parts, pre.Code+" (title unavailable)")
		}
	}
	return p.lines(d.Code+", "+d.Title, "Prerequisites: "+strings.Join(parts, "; "))
}

// Plan prints a recommended order, followed by a warning when the order is
// incomplete.
func (p *Printer) Plan(plan planner.Plan) error {
	if p.format != FormatText {
		return p.encode(plan)
	}

	lines := make([]string, 0, len(plan.Courses)+5)
	lines = append(lines, "Recommended Course Order:")
	for i, e := range plan.Courses {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, e.Code, e.Title))
	}
	if !plan.Complete {
		lines = append(lines, "", "Warning: Circular dependency detected.")
		if len(plan.Blocked) > 0 {
			lines = append(lines, "Blocked courses: "+strings.Join(plan.Blocked, ", "))
		}
		if len(plan.Cycle) > 0 {
			lines = append(lines, "Cycle: "+strings.Join(plan.Cycle, " -> ")+" -> "+plan.Cycle[0])
		}
	}
	return p.lines(lines...)
}

// Message prints a free-form status line. In structured formats it is
// dropped so stdout stays parseable.
func (p *Printer) Message(format string, args ...any) error {
	if p.format != FormatText {
		return nil
	}
	return p.lines(fmt.Sprintf(format, args...))
}

func (p *Printer) lines(lines ...string) error {
	_, err := io.WriteString(p.w, strings.Join(lines, "\n")+"\n")
	return err
}

func (p *Printer) encode(v any) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}
