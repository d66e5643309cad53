package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/fsutil"
)

// Extensions lists the file extensions picked up when a directory is
// loaded.
var Extensions = []string{".csv", ".txt", ".hcl"}

// ReadFile parses a single catalog file, choosing the format by extension.
func ReadFile(path string) ([]Record, []Skipped, error) {
	if fsutil.HasExtension(path, ".hcl") {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return ParseHCL(src, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return ParseLines(f, path)
}

// LoadPath loads a catalog from a single file or from every catalog file
// under a directory, in lexical order. Records from later files replace
// earlier ones with the same code. Any unreadable file fails the whole load
// with ErrSourceUnavailable and a nil catalog.
func LoadPath(ctx context.Context, path string) (*catalog.Catalog, Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading catalog...", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, Extensions...)
		if err != nil {
			return nil, Report{}, fmt.Errorf("%w: failed to find catalog files in %s: %w", ErrSourceUnavailable, path, err)
		}
		if len(files) == 0 {
			return nil, Report{}, fmt.Errorf("%w: no catalog files found in %s", ErrSourceUnavailable, path)
		}
	}

	var (
		records []Record
		skipped []Skipped
	)
	for _, file := range files {
		logger.Debug("Reading catalog file.", "file", file)
		recs, skips, err := ReadFile(file)
		if err != nil {
			return nil, Report{}, err
		}
		records = append(records, recs...)
		skipped = append(skipped, skips...)
	}

	cat, report, err := Load(records)
	if err != nil {
		return nil, Report{}, err
	}
	report.Skipped = append(skipped, report.Skipped...)

	for _, s := range report.Skipped {
		logger.Warn("Skipped catalog record.", "location", s.Location(), "reason", s.Err)
	}
	logger.Info("Catalog loaded.", "path", path, "files", len(files), "records", report.Records, "courses", report.Loaded, "skipped", len(report.Skipped))

	return cat, report, nil
}
