package chain

// Journaled mutation helpers. Contract state lives in ordinary Go values;
// every write goes through one of these so it can be undone.

// Set assigns v to *ptr.
func Set[T any](f *Frame, ptr *T, v T) {
	old := *ptr
	*ptr = v
	f.OnRevert(func() { *ptr = old })
}

// SetKey assigns m[k] = v.
func SetKey[K comparable, V any](f *Frame, m map[K]V, k K, v V) {
	old, existed := m[k]
	m[k] = v
	f.OnRevert(func() {
		if existed {
			m[k] = old
		} else {
			delete(m, k)
		}
	})
}

// DeleteKey removes k from m.
func DeleteKey[K comparable, V any](f *Frame, m map[K]V, k K) {
	old, existed := m[k]
	if !existed {
		return
	}
	delete(m, k)
	f.OnRevert(func() { m[k] = old })
}

// Append appends v to *s.
func Append[T any](f *Frame, s *[]T, v T) {
	n := len(*s)
	*s = append(*s, v)
	f.OnRevert(func() { *s = (*s)[:n] })
}

// Swap removes the element at i by moving the last element into its place.
// Order is not preserved.
func Swap[T any](f *Frame, s *[]T, i int) T {
	items := *s
	n := len(items)
	removed := items[i]
	last := items[n-1]
	items[i] = last
	*s = items[:n-1]
	f.OnRevert(func() {
		restored := (*s)[:n]
		restored[n-1] = last
		restored[i] = removed
		*s = restored
	})
	return removed
}
