package usecase

// RingBuffer is a fixed-size circular buffer for storing message history
// It provides O(1) append; the oldest element is overwritten when full
type RingBuffer[T any] struct {
	data []T
	head int // next write position
	size int // current number of elements
	cap  int // maximum capacity
}

// NewRingBuffer creates a new ring buffer with the given capacity
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{
		data: make([]T, capacity),
		cap:  capacity,
	}
}

// Add appends an element to the buffer, overwriting oldest if full
func (rb *RingBuffer[T]) Add(v T) {
	rb.data[rb.head] = v
	rb.head = (rb.head + 1) % rb.cap

	if rb.size < rb.cap {
		rb.size++
	}
}

// GetAll returns all elements in chronological order (oldest first)
func (rb *RingBuffer[T]) GetAll() []T {
	if rb.size == 0 {
		return nil
	}

	result := make([]T, rb.size)

	if rb.size < rb.cap {
		// Buffer not full yet, elements are at indices 0..size-1
		copy(result, rb.data[:rb.size])
	} else {
		// Buffer is full, head points to oldest element
		copy(result, rb.data[rb.head:])
		copy(result[rb.cap-rb.head:], rb.data[:rb.head])
	}

	return result
}

// Last returns the newest n elements, oldest first
func (rb *RingBuffer[T]) Last(n int) []T {
	all := rb.GetAll()
	if n < 0 {
		n = 0
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// RemoveFunc deletes the first element matching fn and reports it.
// Order of the remaining elements is preserved.
func (rb *RingBuffer[T]) RemoveFunc(fn func(T) bool) (T, bool) {
	var removed T
	all := rb.GetAll()
	idx := -1
	for i, v := range all {
		if fn(v) {
			idx = i
			removed = v
			break
		}
	}
	if idx < 0 {
		return removed, false
	}

	rb.Clear()
	for i, v := range all {
		if i != idx {
			rb.Add(v)
		}
	}
	return removed, true
}

// Len returns the current number of elements
func (rb *RingBuffer[T]) Len() int {
	return rb.size
}

// Cap returns the maximum number of elements
func (rb *RingBuffer[T]) Cap() int {
	return rb.cap
}

// Clear removes all elements from the buffer
func (rb *RingBuffer[T]) Clear() {
	rb.head = 0
	rb.size = 0
	// Zero out data to allow GC
	var zero T
	for i := range rb.data {
		rb.data[i] = zero
	}
}
