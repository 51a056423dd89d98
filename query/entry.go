package query

import "github.com/goliatone/go-clientes-sync/cache"

// Status is the lifecycle state of a coordinator entry.
type Status int

const (
	StatusAbsent Status = iota
	StatusLoading
	StatusReady
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Entry is a snapshot of one coordinator entry.
type Entry struct {
	Key    cache.Key
	Status Status
	// Value is the last fetched value; only set when Status is StatusReady.
	Value any
	// Err is the failure of the last request; only set when Status is StatusErrored.
	Err error
	// Generation counts the invalidations the entry has seen.
	Generation uint64
	// Waiters is the number of callers blocked on the in-flight request.
	Waiters int
}

type entry struct {
	status  Status
	err     error
	gen     uint64
	waiters int
}
