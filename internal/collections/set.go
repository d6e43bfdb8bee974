package collections

// OrderedSet keeps the first occurrence of each value in insertion order
type OrderedSet[T comparable] struct {
	index map[T]struct{}
	items []T
}

// NewOrderedSet creates a set holding vs, duplicates dropped
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: make(map[T]struct{}, len(vs))}
	s.Add(vs...)
	return s
}

// Add appends values not yet present and reports how many were new
func (s *OrderedSet[T]) Add(vs ...T) int {
	added := 0
	for _, v := range vs {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = struct{}{}
		s.items = append(s.items, v)
		added++
	}
	return added
}

// Has checks if the set contains the given value
func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct values
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Members returns the values in insertion order
func (s *OrderedSet[T]) Members() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
