package app

import (
	"context"

	"github.com/specialistvlad/courseplan/internal/planner"
	"github.com/specialistvlad/courseplan/internal/present"
)

func (a *App) runList(ctx context.Context) error {
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return a.printer.NoData()
	}
	return a.printer.CourseList(planner.ListSorted(cat))
}

func (a *App) runShow(ctx context.Context, query string) error {
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return a.printer.NoData()
	}

	detail, err := planner.Lookup(cat, query)
	if err != nil {
		if printErr := a.printer.NotFound(query); printErr != nil {
			return printErr
		}
		return err
	}
	return a.printer.CourseDetail(detail)
}

func (a *App) runOrder(ctx context.Context) error {
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	cat := a.session.Catalog()
	if cat.Len() == 0 {
		return a.printer.NoData()
	}

	plan := planner.RecommendedOrder(ctx, cat)
	if err := a.printer.Plan(plan); err != nil {
		return err
	}
	return plan.Err()
}

func (a *App) runExport(ctx context.Context) error {
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	return present.WriteHCL(a.outW, a.session.Catalog())
}
