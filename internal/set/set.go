// Package set provides a small generic set keyed by identity.
package set

// Set is an unordered collection of distinct comparable values.
// The zero value is not usable; create sets with New.
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{items: make(map[T]struct{})}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Has reports whether v is in the set.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if _, ok := s.items[v]; !ok {
		return false
	}
	delete(s.items, v)
	return true
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Clear removes every element.
func (s *Set[T]) Clear() {
	clear(s.items)
}

// Items returns the elements in unspecified order.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	return out
}
