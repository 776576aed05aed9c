package cache

import "time"

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// entry is the internal per-key record. All fields are guarded by the cache
// mutex.
type entry struct {
	key    Key
	status Status
	data   any
	err    error

	// issued counts fetches started for this key; applied records which fetch
	// produced the current data. A completing fetch older than the newest
	// issued one is discarded, so responses land in issue order.
	issued  uint64
	applied uint64

	stale       bool
	subscribers int
	lastAccess  time.Time
	updatedAt   time.Time
}

// Snapshot is a read-only copy of an entry's observable state.
type Snapshot struct {
	Key         Key
	Status      Status
	Data        any
	Err         error
	Stale       bool
	Subscribers int
	UpdatedAt   time.Time
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Key:         e.key,
		Status:      e.status,
		Data:        e.data,
		Err:         e.err,
		Stale:       e.stale,
		Subscribers: e.subscribers,
		UpdatedAt:   e.updatedAt,
	}
}
