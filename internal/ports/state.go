package ports

import "context"

// StateReader reads committed host state. Get returns a nil value and a nil
// error for absent keys.
type StateReader interface {
	Get(key []byte) ([]byte, error)
	Iterate(prefix []byte, fn func(key, value []byte) error) error
}

type StateTx interface {
	StateReader
	Set(key, value []byte) error
}

// HostState is the persistent store owned by the chain host. Update runs fn
// atomically: either every write commits or none does.
type HostState interface {
	View(ctx context.Context, fn func(StateReader) error) error
	Update(ctx context.Context, fn func(StateTx) error) error
}
