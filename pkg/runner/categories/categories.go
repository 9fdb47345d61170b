// Package categories provides the headless category legend.
package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/fairmap/pkg/category"
	"tableflip.dev/fairmap/pkg/venue"
)

// Categories prints the grouped category legend with live counts.
type Categories struct {
	Document venue.Document
}

// Do renders one table per category group to stdout.
func (c *Categories) Do(ctx context.Context) error {
	idx := category.NewIndex(c.Document.Categories)
	if idx.Len() == 0 {
		return errors.New("can not list, no categories loaded")
	}

	bold := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	for _, group := range idx.Grouped() {
		_, _ = fmt.Fprintln(color.Output, "")
		_, _ = bold.Fprint(color.Output, group.Name)
		_, _ = faint.Fprintf(color.Output, " - %d\n", group.Count())

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, cat := range group.Categories {
			name := cat.Name
			if cat.Synthesized {
				name = name + faint.Sprint(" (auto)")
			}
			tbl.AddRow(" "+cat.Icon, name, faint.Sprint(cat.ID), fmt.Sprintf("%d", cat.Count))
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}
