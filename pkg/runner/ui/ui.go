// Package ui launches the interactive map interface.
package ui

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/fairmap/pkg/engine"
	"tableflip.dev/fairmap/pkg/mapsurface/gridmap"
	"tableflip.dev/fairmap/pkg/tui/app"
	"tableflip.dev/fairmap/pkg/venue"
)

// UI wires the loaded document into the interactive map.
type UI struct {
	Document  venue.Document
	FromCache bool

	// Location pre-selects a location id on startup, the deep link path.
	Location string
}

// Do configures the map surface and runs the program until exit.
func (u *UI) Do(ctx context.Context) error {
	if u.FromCache {
		fmt.Fprintln(os.Stderr, "serving cached snapshot; endpoints unreachable")
	}

	surface := gridmap.New()
	surface.Configure(u.Document.Map)

	return app.Run(engine.New(u.Document), surface, app.Options{
		DeepLink: u.Location,
	})
}
