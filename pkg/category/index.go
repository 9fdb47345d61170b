// Package category maintains the read-only id → category mapping derived from
// a normalized document, plus the deterministic group classifier feeding the
// category tree surface.
package category

import (
	"sort"

	"tableflip.dev/fairmap/pkg/venue"
)

// Index is a read-only view over the categories of one loaded document.
type Index struct {
	byID  map[string]venue.Category
	order []string
}

// NewIndex builds an index from normalizer output. Input order is preserved
// for iteration so the tree renders in document order.
func NewIndex(categories []venue.Category) *Index {
	idx := &Index{byID: make(map[string]venue.Category, len(categories))}
	for _, c := range categories {
		if _, ok := idx.byID[c.ID]; ok {
			continue
		}
		idx.byID[c.ID] = c
		idx.order = append(idx.order, c.ID)
	}
	return idx
}

// Get returns the category for an id.
func (i *Index) Get(id string) (venue.Category, bool) {
	c, ok := i.byID[id]
	return c, ok
}

// IDs returns all category ids in document order.
func (i *Index) IDs() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// All returns the categories in document order.
func (i *Index) All() []venue.Category {
	out := make([]venue.Category, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.byID[id])
	}
	return out
}

// Len reports how many categories the index holds.
func (i *Index) Len() int { return len(i.order) }

// Grouped partitions the categories into named groups via GroupOf. Every
// category lands in exactly one group; groups keep document order internally
// and are emitted in the classifier's declaration order.
func (i *Index) Grouped() []Group {
	buckets := make(map[string][]venue.Category)
	for _, id := range i.order {
		c := i.byID[id]
		name := GroupOf(c.Name)
		buckets[name] = append(buckets[name], c)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		return groupRank(names[a]) < groupRank(names[b])
	})

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Categories: buckets[name]})
	}
	return groups
}

// Group is a named bucket of categories for the tree surface. Groups carry no
// filtering semantics of their own.
type Group struct {
	Name       string
	Categories []venue.Category
}

// Count sums the location counts of the group's categories.
func (g Group) Count() int {
	total := 0
	for _, c := range g.Categories {
		total += c.Count
	}
	return total
}
