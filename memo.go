package notemark

import "sync"

// Memo caches the result of fn for the most recent input. It is meant for callers
// that re-run a pipeline on every edit of a buffer and want to skip work when the
// buffer did not change. Memo is safe for concurrent use.
type Memo[V any] struct {
	mu     sync.Mutex
	fn     func(string) V
	key    string
	val    V
	valid  bool
	hits   uint64
	misses uint64
}

// NewMemo returns a Memo around fn. Parse is the usual fn.
func NewMemo[V any](fn func(string) V) *Memo[V] {
	return &Memo[V]{fn: fn}
}

// Get returns fn(input), reusing the previous result when input equals the last input.
// The second result reports whether the value came from the cache.
func (m *Memo[V]) Get(input string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.key == input {
		m.hits++
		return m.val, true
	}
	m.misses++
	m.val = m.fn(input)
	m.key = input
	m.valid = true
	return m.val, false
}

// Reset drops the cached value.
func (m *Memo[V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero V
	m.key = ""
	m.val = zero
	m.valid = false
}

// Stats returns cache hit and miss counts.
func (m *Memo[V]) Stats() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
