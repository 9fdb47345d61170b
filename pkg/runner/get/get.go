// Package get provides the headless location listing.
package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/fairmap/pkg/engine"
	"tableflip.dev/fairmap/pkg/venue"
)

// Get lists locations matching the given filters, the same visibility rules
// the interactive map applies.
type Get struct {
	Document venue.Document

	Query      string
	Categories []string
	Featured   bool
	ShowID     bool
}

// Do renders the filtered location table to stdout.
func (g *Get) Do(ctx context.Context) error {
	if len(g.Document.Locations) == 0 {
		return errors.New("can not get, no locations loaded")
	}

	eng := engine.New(g.Document)
	if len(g.Categories) > 0 {
		eng.SetActiveCategories(g.Categories)
	}
	snap := eng.SetQuery(g.Query)

	visible := snap.Visible
	if g.Featured {
		kept := make([]venue.Location, 0, len(visible))
		for _, loc := range visible {
			if loc.Featured {
				kept = append(kept, loc)
			}
		}
		visible = kept
	}
	venue.SortForList(visible)

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = fmt.Fprintln(color.Output, "")
	if len(visible) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, " none")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	if g.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Booth"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Booth"))
	}
	for _, loc := range visible {
		name := loc.Name
		if loc.Featured {
			name = "★ " + name
		}
		if g.ShowID {
			tbl.AddRow(faint.Sprint(loc.ID), name, loc.CategoryName, loc.Booth)
		} else {
			tbl.AddRow(name, loc.CategoryName, loc.Booth)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	_, _ = faint.Fprintf(color.Output, "\n%d of %d locations\n", len(visible), len(g.Document.Locations))
	return nil
}
