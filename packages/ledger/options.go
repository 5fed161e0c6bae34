package ledger

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"
)

// region WithStore ////////////////////////////////////////////////////////////////////////////////////////////////////

// WithStore is an Option for the Ledger that allows to configure which KVStore is supposed to be used to persist
// accounts (the default option is to use a MapDB).
func WithStore(store kvstore.KVStore) Option {
	return func(options *options) {
		options.store = store
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WithLogger ///////////////////////////////////////////////////////////////////////////////////////////////////

// WithLogger is an Option for the Ledger that sets the logger committed transactions are reported to.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the Ledger to
// configure its behavior.
type Option func(*options)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

// options is a container for all configurable parameters of a Ledger.
type options struct {
	// store contains the KVStore that is used to persist accounts.
	store kvstore.KVStore
	// log contains the logger that committed transactions are reported to.
	log *logger.Logger
}

// newOptions returns a new options object that corresponds to the handed in options and fills in the defaults for
// everything that was not set.
func newOptions(option ...Option) (new *options) {
	return (&options{}).apply(option...).withDefaults()
}

// apply modifies the options object by overriding the handed in options.
func (o *options) apply(options ...Option) (self *options) {
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *options) withDefaults() (self *options) {
	if o.store == nil {
		o.store = mapdb.NewMapDB()
	}
	if o.log == nil {
		o.log = zap.NewNop().Sugar()
	}
	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
