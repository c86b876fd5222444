package session

// Memo is a write-once cell. The first successful computation is kept for the
// lifetime of the cell and never invalidated. It is not safe for concurrent use.
type Memo[T any] struct {
	value T
	set   bool
}

// Get returns the cached value, computing it first if needed. A failed
// computation leaves the cell empty so a later call may try again.
func (m *Memo[T]) Get(compute func() (T, error)) (T, bool) {
	if m.set {
		return m.value, true
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, false
	}
	m.value = v
	m.set = true
	return v, true
}

// Ready reports whether the cell holds a value.
func (m *Memo[T]) Ready() bool { return m.set }
