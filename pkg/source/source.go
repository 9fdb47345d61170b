// Package source fetches the venue document from its backend collaborator.
// The backend is a plain fetch-a-JSON-document service; writes happen in the
// excluded admin surface and reach this core only as full reloads.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"tableflip.dev/fairmap/pkg/venue"
)

// ErrNoData means no endpoint produced a usable document and no cached
// snapshot was available. This is fatal to initialization; no partial UI is
// shown on top of it.
var ErrNoData = errors.New("source: no data source reachable")

// Result is a successful load.
type Result struct {
	Document venue.Document
	// Endpoint is the candidate that served the document, or "cache".
	Endpoint string
	// FromCache marks a document served from the local snapshot cache.
	FromCache bool
}

// Loader fetches and normalizes venue documents.
type Loader struct {
	Client *http.Client
	Cache  *SnapshotCache
}

// NewLoader returns a loader with a sane default HTTP timeout.
func NewLoader(cache *SnapshotCache) *Loader {
	return &Loader{
		Client: &http.Client{Timeout: 15 * time.Second},
		Cache:  cache,
	}
}

// Load tries each endpoint in order and returns the first normalized
// document that has both categories and locations. A good document refreshes
// the snapshot cache. When every endpoint fails, the cache is the last
// candidate; with nothing cached the load fails with ErrNoData.
func (l *Loader) Load(ctx context.Context, endpoints []string) (Result, error) {
	var lastErr error
	for _, endpoint := range endpoints {
		data, err := l.fetch(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}
		doc, err := venue.ParseDocument(data)
		if err != nil {
			lastErr = fmt.Errorf("parse %s: %w", endpoint, err)
			continue
		}
		if len(doc.Categories) == 0 || len(doc.Locations) == 0 {
			lastErr = fmt.Errorf("%s: empty document", endpoint)
			continue
		}
		if l.Cache != nil {
			if err := l.Cache.Put(data); err != nil {
				fmt.Fprintf(os.Stderr, "snapshot cache write: %v\n", err)
			}
		}
		return Result{Document: doc, Endpoint: endpoint}, nil
	}

	if l.Cache != nil {
		if data, ok := l.Cache.Get(); ok {
			doc, err := venue.ParseDocument(data)
			if err == nil && len(doc.Categories) > 0 && len(doc.Locations) > 0 {
				return Result{Document: doc, Endpoint: "cache", FromCache: true}, nil
			}
		}
	}

	if lastErr != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNoData, lastErr)
	}
	return Result{}, ErrNoData
}

func (l *Loader) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		data, err := os.ReadFile(endpoint)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", endpoint, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	return data, nil
}
