// Package clustercolor computes a representative color per map cluster from
// its member leaves. Leaf lookups resolve asynchronously and can arrive out
// of order, so every round of computation runs under a monotonic generation
// token; resolutions carrying a stale token are discarded instead of applied.
package clustercolor

import (
	"sync"
)

// Token identifies one generation of cluster color computation.
type Token uint64

// Aggregator holds the ephemeral cluster → color cache for the current
// generation. It is keyed by the surface's native cluster id, never by
// location ids.
type Aggregator struct {
	mu      sync.Mutex
	current Token
	colors  map[uint64]string
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{colors: make(map[uint64]string)}
}

// Begin starts a new generation, invalidating the cache wholesale. Results
// from earlier generations will be rejected by Resolve.
func (a *Aggregator) Begin() Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current++
	a.colors = make(map[uint64]string)
	return a.current
}

// Current reports the active generation token.
func (a *Aggregator) Current() Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Resolve records the dominant color among the leaf colors of one cluster.
// It reports whether the result was applied: a resolution whose token no
// longer matches the active generation is dropped, whatever its arrival
// order. An empty leaf set is a no-op.
func (a *Aggregator) Resolve(token Token, clusterID uint64, leafColors []string) bool {
	color, ok := Dominant(leafColors)
	if !ok {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if token != a.current {
		return false
	}
	a.colors[clusterID] = color
	return true
}

// Color returns the cached color for a cluster, if one was resolved in the
// current generation.
func (a *Aggregator) Color(clusterID uint64) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	color, ok := a.colors[clusterID]
	return color, ok
}

// Dominant picks the most frequent color; ties go to the first color seen in
// input order.
func Dominant(colors []string) (string, bool) {
	if len(colors) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(colors))
	best := ""
	bestCount := 0
	for _, c := range colors {
		if c == "" {
			continue
		}
		counts[c]++
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
