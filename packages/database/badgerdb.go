package database

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/badger/v2/options"
	"github.com/iotaledger/hive.go/kvstore"
	badgerstore "github.com/iotaledger/hive.go/kvstore/badger"
)

const valueLogGCDiscardRatio = 0.1

type badgerDB struct {
	*badger.DB
}

// NewDB returns a new persisting DB object stored in dirname.
func NewDB(dirname string) (DB, error) {
	if err := createDir(dirname); err != nil {
		return nil, errors.Errorf("could not create DB directory: %w", err)
	}

	opts := badger.DefaultOptions(dirname)

	opts.Logger = nil
	// every committed ledger transaction has to survive a crash
	opts.SyncWrites = true
	opts.TableLoadingMode = options.MemoryMap
	opts.ValueLogLoadingMode = options.MemoryMap
	opts.CompactL0OnClose = true
	opts.Compression = options.None

	if runtime.GOOS == "windows" {
		opts = opts.WithTruncate(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Errorf("could not open DB: %w", err)
	}

	return &badgerDB{DB: db}, nil
}

func (db *badgerDB) NewStore() kvstore.KVStore {
	return badgerstore.New(db.DB)
}

// Close closes a DB. It's crucial to call it to ensure all the pending updates make their way to disk.
func (db *badgerDB) Close() error {
	return db.DB.Close()
}

func (db *badgerDB) RequiresGC() bool {
	return true
}

func (db *badgerDB) GC() error {
	err := db.RunValueLogGC(valueLogGCDiscardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	runtime.GC()
	return nil
}

func (db *badgerDB) Size() int64 {
	lsm, vlog := db.DB.Size()
	return lsm + vlog
}

func createDir(dirname string) error {
	if _, err := os.Stat(dirname); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.MkdirAll(dirname, 0o700)
}
