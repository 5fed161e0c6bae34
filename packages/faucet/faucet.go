package faucet

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/uuid"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/stringify"
	"go.uber.org/zap"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// region Faucet ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Faucet hands out a fixed amount of native coins and tokens to every identity exactly once. Every operation is
// executed as a single ledger transaction, so it either takes effect completely or not at all.
type Faucet struct {
	Events *Events

	ledger    *ledger.Ledger
	addresses *Addresses
	log       *logger.Logger
}

// New creates a Faucet that operates on the given ledger.
func New(l *ledger.Ledger, opts ...Option) (*Faucet, error) {
	options := newOptions(opts...)

	addresses, err := DeriveAddresses(options.program)
	if err != nil {
		return nil, errors.Errorf("failed to derive faucet addresses of program %s: %w", options.program, err)
	}

	return &Faucet{
		Events:    newEvents(),
		ledger:    l,
		addresses: addresses,
		log:       options.log,
	}, nil
}

// Addresses returns the derived accounts of the faucet.
func (f *Faucet) Addresses() *Addresses {
	return f.addresses
}

// Initialize creates the Config and the token vault. It can only succeed once.
func (f *Faucet) Initialize(ctx context.Context, admin ledger.Signer, mint ledger.Address) (config *Config, txID ledger.TransactionID, err error) {
	txID, err = f.ledger.Update(ctx, f.addresses.Program, func(tx *ledger.Tx) error {
		if _, err := tx.Record(f.addresses.ConfigAddress()); err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, ledger.ErrAccountNotFound) {
			return err
		}

		if _, err := tx.Mint(mint); err != nil {
			if errors.Is(err, ledger.ErrAccountNotFound) {
				return errors.Errorf("%s: %w", mint, ErrMintNotFound)
			}
			return err
		}

		config = &Config{
			Administrator:   admin.Address(),
			TokenMint:       mint,
			TokenVault:      f.addresses.TokenVaultAddress(),
			NativeVault:     f.addresses.NativeVaultAddress(),
			ConfigBump:      f.addresses.Config.Bump,
			NativeVaultBump: f.addresses.NativeVault.Bump,
			TokenVaultBump:  f.addresses.TokenVault.Bump,
		}

		if err := tx.CreateTokenAccount(config.TokenVault, mint, f.addresses.ConfigAddress(), f.addresses.TokenVault); err != nil {
			return errors.Errorf("failed to create token vault: %w", err)
		}

		return tx.CreateRecord(f.addresses.ConfigAddress(), config.Bytes(), f.addresses.Config)
	}, admin)
	if err != nil {
		return nil, ledger.EmptyTransactionID, err
	}

	f.log.Infow("faucet initialized", "admin", config.Administrator, "mint", config.TokenMint, "tx", txID)
	f.Events.Initialized.Trigger(&InitializedEvent{Config: config, TransactionID: txID})

	return config, txID, nil
}

// DepositNative moves native coins from the admin into the native vault.
func (f *Faucet) DepositNative(ctx context.Context, caller ledger.Signer, amount uint64) (ledger.TransactionID, error) {
	return f.deposit(ctx, caller, NativeVault, amount, func(*Config) ledger.Address {
		return caller.Address()
	})
}

// DepositToken moves tokens from the associated token account of the admin into the token vault.
func (f *Faucet) DepositToken(ctx context.Context, caller ledger.Signer, amount uint64) (ledger.TransactionID, error) {
	return f.deposit(ctx, caller, TokenVault, amount, func(config *Config) ledger.Address {
		return ledger.AssociatedTokenAddress(caller.Address(), config.TokenMint)
	})
}

func (f *Faucet) deposit(ctx context.Context, caller ledger.Signer, kind VaultKind, amount uint64, source func(*Config) ledger.Address) (txID ledger.TransactionID, err error) {
	if amount == 0 {
		return ledger.EmptyTransactionID, ErrInvalidAmount
	}

	txID, err = f.ledger.Update(ctx, f.addresses.Program, func(tx *ledger.Tx) error {
		config, err := f.loadConfig(tx)
		if err != nil {
			return err
		}
		if !IsAdministrator(caller.Address(), config) {
			return errors.Errorf("%s can not deposit: %w", caller, ErrUnauthorized)
		}

		if err = NewVaultRegistry(tx, f.addresses).Deposit(kind, source(config), amount); err != nil {
			switch {
			case errors.Is(err, ledger.ErrInsufficientFunds):
				return errors.Mark(errors.Wrapf(err, "failed to deposit into %s", kind), ErrInsufficientCallerBalance)
			case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, ledger.ErrMintMismatch):
				return errors.Mark(errors.Wrapf(err, "failed to deposit into %s", kind), ErrInvalidTokenAccount)
			}
			return err
		}

		return nil
	}, caller)
	if err != nil {
		return ledger.EmptyTransactionID, err
	}

	f.log.Infow("deposit", "vault", kind, "amount", amount, "tx", txID)
	f.Events.Deposited.Trigger(&DepositedEvent{Vault: kind, Amount: amount, TransactionID: txID})

	return txID, nil
}

// Claim transfers NativeClaimAmount native coins and TokenClaimAmount tokens to the claimant. The tokens are credited
// to the associated token account of the claimant which has to exist.
func (f *Faucet) Claim(ctx context.Context, claimant ledger.Signer) (receipt *Receipt, err error) {
	defer func() {
		if err != nil {
			f.log.Debugw("claim rejected", "claimant", claimant, "err", err)
			f.Events.ClaimFailed.Trigger(&ClaimFailedEvent{Claimant: claimant.Address(), Error: err, Time: time.Now()})
		}
	}()

	receipt = &Receipt{
		Claimant:     claimant.Address(),
		NativeAmount: NativeClaimAmount,
		TokenAmount:  TokenClaimAmount,
	}

	if receipt.TransactionID, err = f.ledger.Update(ctx, f.addresses.Program, func(tx *ledger.Tx) error {
		config, err := f.loadConfig(tx)
		if err != nil {
			return err
		}

		receipt.TokenAccount = ledger.AssociatedTokenAddress(claimant.Address(), config.TokenMint)
		if err = checkTokenAccount(tx, receipt.TokenAccount, claimant.Address(), config.TokenMint); err != nil {
			return err
		}

		claims := NewClaimLedger(tx, f.addresses)
		record, err := claims.Get(claimant.Address())
		if err != nil {
			return err
		}
		if record.HasClaimed {
			return errors.Errorf("%s: %w", claimant, ErrAlreadyClaimed)
		}

		vaults := NewVaultRegistry(tx, f.addresses)
		nativeBalance, err := vaults.Balance(NativeVault)
		if err != nil {
			return err
		}
		if nativeBalance < NativeClaimAmount {
			return errors.Errorf("vault holds %d but %d are needed: %w", nativeBalance, NativeClaimAmount, ErrInsufficientSolBalance)
		}
		if err = vaults.Transfer(NativeVault, claimant.Address(), NativeClaimAmount, config.nativeVaultAuthority(f.addresses.Program)); err != nil {
			return errors.Errorf("failed to transfer native coins: %w", err)
		}

		// the token vault is not checked upfront, an underfunded vault fails the transfer and the whole claim
		if err = vaults.Transfer(TokenVault, receipt.TokenAccount, TokenClaimAmount, config.configAuthority(f.addresses.Program)); err != nil {
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				return errors.Mark(errors.Wrap(err, "failed to transfer tokens"), ErrInsufficientTokenBalance)
			}
			return errors.Errorf("failed to transfer tokens: %w", err)
		}

		return claims.MarkClaimed(claimant.Address())
	}, claimant); err != nil {
		return nil, err
	}

	receipt.ID = uuid.Must(uuid.NewV4())
	receipt.Time = time.Now()

	f.log.Infow("claim", "claimant", claimant, "tokenAccount", receipt.TokenAccount, "tx", receipt.TransactionID)
	f.Events.Claimed.Trigger(&ClaimedEvent{Receipt: receipt})

	return receipt, nil
}

// Config returns the Config of the faucet.
func (f *Faucet) Config(ctx context.Context) (config *Config, err error) {
	err = f.ledger.View(ctx, func(tx *ledger.Tx) error {
		config, err = f.loadConfig(tx)
		return err
	})

	return config, err
}

// ClaimRecord returns the ClaimRecord of identity. Identities that never claimed get a zero ClaimRecord.
func (f *Faucet) ClaimRecord(ctx context.Context, identity ledger.Address) (record *ClaimRecord, err error) {
	err = f.ledger.View(ctx, func(tx *ledger.Tx) error {
		record, _, err = NewClaimLedger(tx, f.addresses).Lookup(identity)
		return err
	})

	return record, err
}

// Balances returns the funds held by both vaults.
func (f *Faucet) Balances(ctx context.Context) (balances *Balances, err error) {
	err = f.ledger.View(ctx, func(tx *ledger.Tx) error {
		vaults := NewVaultRegistry(tx, f.addresses)

		balances = &Balances{}
		if balances.Native, err = vaults.Balance(NativeVault); err != nil {
			return err
		}
		balances.Token, err = vaults.Balance(TokenVault)

		return err
	})
	if err != nil {
		return nil, err
	}

	return balances, nil
}

func (f *Faucet) loadConfig(tx *ledger.Tx) (*Config, error) {
	record, err := tx.Record(f.addresses.ConfigAddress())
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}

	config, _, err := ConfigFromBytes(record.Data)
	if err != nil {
		return nil, errors.Errorf("failed to load faucet config: %w", err)
	}

	return config, nil
}

func checkTokenAccount(tx *ledger.Tx, address, owner, mint ledger.Address) error {
	account, err := tx.TokenAccount(address)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return errors.Errorf("%s does not exist: %w", address, ErrInvalidTokenAccount)
		}
		return err
	}
	if account.Owner != owner || account.Mint != mint {
		return errors.Errorf("%s is not a %s account of %s: %w", address, mint, owner, ErrInvalidTokenAccount)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Receipt //////////////////////////////////////////////////////////////////////////////////////////////////////

// Receipt describes a successful claim.
type Receipt struct {
	ID            uuid.UUID
	Claimant      ledger.Address
	TokenAccount  ledger.Address
	NativeAmount  uint64
	TokenAmount   uint64
	TransactionID ledger.TransactionID
	Time          time.Time
}

// String returns a human readable version of the Receipt.
func (r *Receipt) String() string {
	return stringify.Struct("Receipt",
		stringify.StructField("id", r.ID.String()),
		stringify.StructField("claimant", r.Claimant.Base58()),
		stringify.StructField("tokenAccount", r.TokenAccount.Base58()),
		stringify.StructField("nativeAmount", r.NativeAmount),
		stringify.StructField("tokenAmount", r.TokenAmount),
		stringify.StructField("transactionID", r.TransactionID.String()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Balances /////////////////////////////////////////////////////////////////////////////////////////////////////

// Balances contains the funds held by the vaults.
type Balances struct {
	Native uint64
	Token  uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// Option configures the Faucet.
type Option func(*options)

// WithProgram sets the program the faucet executes its transactions as and derives its accounts from.
func WithProgram(program ledger.Address) Option {
	return func(options *options) {
		options.program = program
	}
}

// WithLogger sets the logger of the Faucet.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.log = log
	}
}

type options struct {
	program ledger.Address
	log     *logger.Logger
}

func newOptions(opts ...Option) *options {
	o := &options{
		program: DefaultProgramID,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = zap.NewNop().Sugar()
	}

	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
