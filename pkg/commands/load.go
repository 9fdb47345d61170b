package commands

import (
	"context"

	"tableflip.dev/fairmap/pkg/commands/options"
	"tableflip.dev/fairmap/pkg/source"
)

// loadDocument resolves the endpoints from flags or config and fetches the
// venue document. Every data-bearing command funnels through here so the
// endpoint order and cache fallback behave identically everywhere.
func loadDocument(ctx context.Context, so *options.SourceOptions) (source.Result, error) {
	cfg, err := source.LoadConfig()
	if err != nil {
		return source.Result{}, err
	}

	endpoints := cfg.Endpoints
	if len(so.Endpoints) > 0 {
		endpoints = so.Endpoints
	}

	var cache *source.SnapshotCache
	if !so.NoCache {
		cache = source.OpenCache(cfg.CachePath)
	}

	return source.NewLoader(cache).Load(ctx, endpoints)
}
