package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

const goodDocument = `{
	"map": {"style": "streets", "center": [-75, 40], "zoom": 15},
	"categories": [{"id": "food", "name": "Food", "color": "#ff0000"}],
	"locations": [{"id": "a", "name": "Taco", "categoryId": "food", "lat": 40.0, "lng": -75.0}]
}`

func TestLoadPicksFirstNonEmptyEndpoint(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories": [], "locations": []}`))
	}))
	defer empty.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(goodDocument))
	}))
	defer good.Close()

	l := NewLoader(nil)
	res, err := l.Load(context.Background(), []string{empty.URL, good.URL})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Endpoint != good.URL {
		t.Fatalf("expected second endpoint to win, got %s", res.Endpoint)
	}
	if len(res.Document.Locations) != 1 || res.Document.Locations[0].ID != "a" {
		t.Fatalf("unexpected document: %+v", res.Document)
	}
	if res.Document.Map.Style != "streets" {
		t.Fatalf("map block not carried: %+v", res.Document.Map)
	}
}

func TestLoadAllEndpointsFailIsFatal(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()

	l := NewLoader(nil)
	_, err := l.Load(context.Background(), []string{broken.URL, "/does/not/exist.json"})
	if err == nil {
		t.Fatalf("expected fatal error")
	}
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestLoadFallsBackToSnapshotCache(t *testing.T) {
	cache := OpenCache(t.TempDir())
	if err := cache.Put([]byte(goodDocument)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	l := NewLoader(cache)
	res, err := l.Load(context.Background(), []string{"/nope.json"})
	if err != nil {
		t.Fatalf("expected cache fallback, got %v", err)
	}
	if !res.FromCache || res.Endpoint != "cache" {
		t.Fatalf("expected cache result, got %+v", res)
	}
}

func TestLoadRefreshesCacheOnSuccess(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(goodDocument))
	}))
	defer good.Close()

	cache := OpenCache(t.TempDir())
	l := NewLoader(cache)
	if _, err := l.Load(context.Background(), []string{good.URL}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cache.Get(); !ok {
		t.Fatalf("cache should hold the fetched snapshot")
	}
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/locations.json"
	if err := writeFile(path, goodDocument); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := NewLoader(nil)
	res, err := l.Load(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Endpoint != path {
		t.Fatalf("expected file endpoint, got %s", res.Endpoint)
	}
}
