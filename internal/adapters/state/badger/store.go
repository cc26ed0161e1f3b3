package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/fhe-strength-tracker/internal/ports"
	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

const dataDirMode = 0o700

type Options struct {
	// Dir is the data directory. An empty Dir opens an in-memory database.
	Dir        string
	SyncWrites bool
	Logger     *zap.Logger
}

// Store is the chain host's persistent state.
type Store struct {
	db     *badgerdb.DB
	logger *zap.Logger
}

var _ ports.HostState = (*Store)(nil)

func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var dbOpts badgerdb.Options
	if opts.Dir == "" {
		dbOpts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Dir, dataDirMode); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
		dbOpts = badgerdb.DefaultOptions(opts.Dir)
		dbOpts.SyncWrites = opts.SyncWrites
	}
	dbOpts.Logger = newBadgerLogger(logger)
	dbOpts.MemTableSize = 16 << 20
	dbOpts.BlockCacheSize = 16 << 20
	dbOpts.IndexCacheSize = 8 << 20
	dbOpts.NumMemtables = 2
	dbOpts.NumCompactors = 2

	db, err := badgerdb.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	logger.Debug("host state opened", zap.String("dir", opts.Dir), zap.Bool("in_memory", opts.Dir == ""))

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close state database: %w", err)
	}

	return nil
}

func (s *Store) View(ctx context.Context, fn func(ports.StateReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(txn *badgerdb.Txn) error {
		return fn(&transaction{txn: txn})
	})
}

// Update runs fn in a read-write transaction. Returning an error from fn
// discards every write made through the transaction.
func (s *Store) Update(ctx context.Context, fn func(ports.StateTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return fn(&transaction{txn: txn})
	})
	if errors.Is(err, badgerdb.ErrConflict) {
		return fmt.Errorf("state update conflict: %w", err)
	}

	return err
}

type transaction struct {
	txn *badgerdb.Txn
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get state key: %w", err)
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("copy state value: %w", err)
	}

	return value, nil
}

func (t *transaction) Set(key, value []byte) error {
	if err := t.txn.Set(key, value); err != nil {
		return fmt.Errorf("set state key: %w", err)
	}

	return nil
}

func (t *transaction) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	it := t.txn.NewIterator(badgerdb.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 16})
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("copy state value: %w", err)
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}

	return nil
}
