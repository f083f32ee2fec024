package domain

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Trial is a read-only view of one static motion-capture pose.
type Trial interface {
	// Lookup returns the global position of a marker, or false if the trial lacks it.
	Lookup(label string) (r3.Vec, bool)
}

// StaticTrial is the in-memory Trial: one position per marker label.
type StaticTrial map[string]r3.Vec

// Lookup implements Trial.
func (t StaticTrial) Lookup(label string) (r3.Vec, bool) {
	p, ok := t[label]
	return p, ok
}

// Labels returns the marker labels in lexical order.
func (t StaticTrial) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
