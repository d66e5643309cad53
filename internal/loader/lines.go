package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/courseplan/internal/coursecode"
)

// maxLineBytes bounds a single catalog line.
const maxLineBytes = 1 << 20

// ParseLines reads comma-separated course records from r. source names r in
// locations. Malformed lines and lines whose code normalizes to empty are
// returned as skipped; a read failure is returned as ErrSourceUnavailable.
func ParseLines(r io.Reader, source string) ([]Record, []Skipped, error) {
	var (
		records []Record
		skipped []Skipped
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		check := strings.TrimSpace(coursecode.StripBOM(line))
		if check == "" || strings.HasPrefix(check, "#") {
			continue
		}

		fields := splitFields(line)
		if len(fields) < 2 {
			skipped = append(skipped, Skipped{
				Source: source,
				Line:   lineNum,
				Err:    fmt.Errorf("%w: expected at least a code and a title, got %d field(s)", ErrInvalidRecord, len(fields)),
			})
			continue
		}

		if err := validateCode(fields[0]); err != nil {
			skipped = append(skipped, Skipped{Source: source, Line: lineNum, Err: err})
			continue
		}

		records = append(records, Record{
			Source:  source,
			Line:    lineNum,
			Code:    fields[0],
			Title:   fields[1],
			Prereqs: fields[2:],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %w", ErrSourceUnavailable, source, err)
	}

	return records, skipped, nil
}

// splitFields splits a record line on commas and trims every field. A
// trailing delimiter does not start a new field, so "CODE," is one field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	if n := len(fields); n > 1 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(coursecode.StripBOM(f))
	}
	return fields
}
