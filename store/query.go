package store

import "fmt"

type QueryStatus int

const (
	QueryLoading QueryStatus = iota
	QuerySuccess
	QueryError
)

func (s QueryStatus) String() string {
	switch s {
	case QueryLoading:
		return "loading"
	case QuerySuccess:
		return "success"
	case QueryError:
		return "error"
	default:
		return fmt.Sprintf("QueryStatus(%d)", int(s))
	}
}

// Query is the reactive state of an external computation.
type Query[T any] struct {
	Status QueryStatus
	Value  T
	Err    error
}

// Resolver records the outcome of a query and notifies its dependents. It
// must be called from the goroutine that owns the store.
type Resolver[T any] func(value T, err error) error

// NewQuery creates a loading query. The query pointer never changes, so
// dependents are notified through a forced update.
func NewQuery[T any](s *Store) (*ReadOnlySignal[*Query[T]], Resolver[T]) {
	q := &Query[T]{Status: QueryLoading}
	sig := NewSignal(s, q)

	resolve := func(value T, err error) error {
		if err != nil {
			var zero T
			q.Status, q.Value, q.Err = QueryError, zero, err
		} else {
			q.Status, q.Value, q.Err = QuerySuccess, value, nil
		}
		return sig.Update()
	}
	return sig.ReadOnly(), resolve
}
