package grid

// Source yields values one at a time. Next returns false once exhausted.
type Source[T any] interface {
	Next() (T, bool)
}

// SliceSource reads values from a slice in order.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// FromSliceSource wraps items. The slice is not copied.
func FromSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

func (s *SliceSource[T]) Next() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}

// Remaining returns the items that have not been consumed yet.
func (s *SliceSource[T]) Remaining() []T {
	return s.items[s.pos:]
}
