package sliceset

import "slices"

// SliceSet is a small set of values kept in insertion order.
// Lookups are linear; it is meant for sets with a handful of items.
type SliceSet[T comparable] struct {
	Items []T
}

// Add v to the set. Returns false if v is already present.
func (l *SliceSet[T]) Add(v T) bool {
	if l.Has(v) {
		return false
	}
	l.Items = append(l.Items, v)
	return true
}

// Remove v from the set. Returns false if v is not present.
func (l *SliceSet[T]) Remove(v T) bool {
	i := slices.Index(l.Items, v)
	if i < 0 {
		return false
	}
	l.Items = slices.Delete(l.Items, i, i+1)
	return true
}

// Has returns true if the set contains v.
func (l *SliceSet[T]) Has(v T) bool {
	return slices.Contains(l.Items, v)
}

// Len returns the number of items in the set.
func (l *SliceSet[T]) Len() int {
	return len(l.Items)
}

// Clone returns a copy that does not share storage with l.
func (l *SliceSet[T]) Clone() SliceSet[T] {
	return SliceSet[T]{Items: slices.Clone(l.Items)}
}
