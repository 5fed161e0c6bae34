package ledger

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/uuid"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/logger"
)

// region TransactionID ////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionID identifies a committed ledger transaction.
type TransactionID uuid.UUID

// EmptyTransactionID is the TransactionID of transactions that were never committed.
var EmptyTransactionID TransactionID

// NewTransactionID returns a new random TransactionID.
func NewTransactionID() TransactionID {
	return TransactionID(uuid.Must(uuid.NewV4()))
}

// String returns a human readable version of the TransactionID.
func (t TransactionID) String() string {
	return uuid.UUID(t).String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Ledger ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Ledger is the account storage substrate. It executes transactions against a KVStore one at a time: every write of
// a transaction is staged and only committed (in a single batch) if the transaction function succeeds, so a failing
// transaction never leaves partial state behind.
type Ledger struct {
	store kvstore.KVStore
	log   *logger.Logger

	// mutex serializes writing transactions and excludes readers while a batch is committed.
	mutex sync.RWMutex
}

// New creates a new Ledger.
func New(opts ...Option) *Ledger {
	options := newOptions(opts...)

	return &Ledger{
		store: options.store,
		log:   options.log,
	}
}

// Update executes a writing transaction on behalf of program. The signers are the accounts whose owners signed the
// request, only they (and accounts derived by program) can be debited.
func (l *Ledger) Update(ctx context.Context, program Address, transaction func(tx *Tx) error, signers ...Signer) (TransactionID, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := ctx.Err(); err != nil {
		return EmptyTransactionID, errors.WithStack(err)
	}

	tx := newTx(l.store, program, false, signers...)
	if err := transaction(tx); err != nil {
		return EmptyTransactionID, err
	}

	if err := ctx.Err(); err != nil {
		return EmptyTransactionID, errors.WithStack(err)
	}

	if err := l.commit(tx); err != nil {
		return EmptyTransactionID, err
	}
	l.log.Debugw("committed transaction", "id", tx.ID(), "program", program, "writes", len(tx.writes))

	return tx.ID(), nil
}

// View executes a read only transaction.
func (l *Ledger) View(ctx context.Context, transaction func(tx *Tx) error) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	return transaction(newTx(l.store, SystemProgram, true))
}

func (l *Ledger) commit(tx *Tx) error {
	if len(tx.writes) == 0 {
		return nil
	}

	batch, err := l.store.Batched()
	if err != nil {
		return errors.Errorf("failed to create batch for transaction %s: %w", tx.ID(), err)
	}
	for key, value := range tx.writes {
		if err := batch.Set([]byte(key), value); err != nil {
			batch.Cancel()
			return errors.Errorf("failed to stage %d writes of transaction %s: %w", len(tx.writes), tx.ID(), err)
		}
	}

	if err := batch.Commit(); err != nil {
		return errors.Errorf("failed to commit transaction %s: %w", tx.ID(), err)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
