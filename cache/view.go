package cache

import "sync"

// View tracks the latest result for a family of queries whose key changes as
// the consumer adjusts filters or pagination. Entries cache each key
// independently; the view answers "what should the list show right now" when
// overlapping requests for different keys resolve out of order. Results apply
// in issue order: a response to an older request never replaces the result of
// a newer one.
type View struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	key     Key
	data    any
	valid   bool
}

// NewView creates an empty view.
func NewView() *View {
	return &View{}
}

func (v *View) next() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issued++
	return v.issued
}

func (v *View) apply(ticket uint64, key Key, data any) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ticket <= v.applied {
		return false
	}
	v.applied = ticket
	v.key = key
	v.data = data
	v.valid = true
	return true
}

// Current returns the key and data of the newest applied result. The boolean
// is false until any query for the view has resolved.
func (v *View) Current() (Key, any, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.key, v.data, v.valid
}
