package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/planner"
	"github.com/specialistvlad/courseplan/internal/present"
)

const menuText = `
Menu Options:
1. Load Data Structure
2. Print Course List
3. Print Course Details
4. Print Recommended Course Order
9. Exit
`

// runMenu drives the interactive planner until the user exits or input
// ends. It always prints text, whatever the configured output format.
func (a *App) runMenu(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	in := bufio.NewScanner(a.inR)
	out := present.NewPrinter(a.outW, present.FormatText)

	// prompt writes text and reads one trimmed line. ok is false at end of
	// input.
	prompt := func(text string) (line string, ok bool) {
		io.WriteString(a.outW, text)
		if !in.Scan() {
			return "", false
		}
		return strings.TrimSpace(in.Text()), true
	}

	if err := out.Message("Welcome to the Course Planner!"); err != nil {
		return err
	}

	for {
		choice, ok := prompt(menuText + "Enter choice: ")
		if !ok {
			logger.Debug("Menu input ended.")
			return in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = a.menuLoad(ctx, out, prompt)
		case "2":
			err = a.menuList(out)
		case "3":
			err = a.menuShow(out, prompt)
		case "4":
			err = a.menuOrder(ctx, out)
		case "9":
			return out.Message("Exiting program. Goodbye!")
		default:
			err = out.Message("Invalid option. Try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) menuLoad(ctx context.Context, out *present.Printer, prompt func(string) (string, bool)) error {
	text := "Enter file name (e.g., courses.csv): "
	if a.config.CatalogPath != "" {
		text = "Enter file name [" + a.config.CatalogPath + "]: "
	}
	path, ok := prompt(text)
	if !ok {
		return nil
	}
	if path == "" {
		path = a.config.CatalogPath
	}
	if path == "" {
		return out.Message("No file name provided.")
	}

	snap, err := a.session.Load(ctx, path)
	if err != nil {
		return out.Message("Failed to open file.")
	}
	if n := len(snap.Report.Skipped); n > 0 {
		if err := out.Message("Skipped %d invalid record(s).", n); err != nil {
			return err
		}
	}
	return out.Message("Loaded %d courses.", snap.Catalog.Len())
}

func (a *App) menuList(out *present.Printer) error {
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return out.NoData()
	}
	return out.CourseList(planner.ListSorted(cat))
}

func (a *App) menuShow(out *present.Printer, prompt func(string) (string, bool)) error {
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return out.NoData()
	}

	query, ok := prompt("Enter course number: ")
	if !ok {
		return nil
	}
	detail, err := planner.Lookup(cat, query)
	if errors.Is(err, catalog.ErrNotFound) {
		return out.NotFound(query)
	}
	if err != nil {
		return err
	}
	return out.CourseDetail(detail)
}

func (a *App) menuOrder(ctx context.Context, out *present.Printer) error {
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return out.NoData()
	}
	return out.Plan(planner.RecommendedOrder(ctx, cat))
}
