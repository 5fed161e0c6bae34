package ledger

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/marshalutil"
)

const (
	// PrefixNativeBalance defines the storage prefix of native coin balances.
	PrefixNativeBalance byte = iota
	// PrefixTokenAccount defines the storage prefix of token accounts.
	PrefixTokenAccount
	// PrefixMint defines the storage prefix of mints.
	PrefixMint
	// PrefixRecord defines the storage prefix of program records.
	PrefixRecord
)

// Tx is a single ledger transaction. Reads see the writes staged earlier in the same transaction.
type Tx struct {
	id       TransactionID
	program  Address
	signers  map[Address]struct{}
	store    kvstore.KVStore
	writes   map[string][]byte
	readOnly bool
}

func newTx(store kvstore.KVStore, program Address, readOnly bool, signers ...Signer) *Tx {
	tx := &Tx{
		id:       NewTransactionID(),
		program:  program,
		signers:  make(map[Address]struct{}, len(signers)),
		store:    store,
		writes:   make(map[string][]byte),
		readOnly: readOnly,
	}
	for _, signer := range signers {
		tx.signers[signer.Address()] = struct{}{}
	}

	return tx
}

// ID returns the identifier the transaction is committed with.
func (t *Tx) ID() TransactionID {
	return t.id
}

// Program returns the program on whose behalf the transaction is executed.
func (t *Tx) Program() Address {
	return t.program
}

// IsSigner returns true if the owner of address signed the transaction.
func (t *Tx) IsSigner(address Address) bool {
	_, signed := t.signers[address]
	return signed
}

// region native coin //////////////////////////////////////////////////////////////////////////////////////////////////

// NativeBalance returns the native coin balance of address. Unknown accounts have a balance of zero.
func (t *Tx) NativeBalance(address Address) (balance uint64, err error) {
	value, exists, err := t.get(PrefixNativeBalance, address)
	if err != nil || !exists {
		return 0, err
	}

	if balance, err = marshalutil.New(value).ReadUint64(); err != nil {
		return 0, errors.Errorf("failed to parse balance of %s (%v): %w", address, err, ErrParseBytesFailed)
	}

	return balance, nil
}

// Transfer moves native coins. The source has to be a signer of the transaction or be authorized by proof.
func (t *Tx) Transfer(from, to Address, amount uint64, proof *AuthorityProof) error {
	if err := t.authorize(from, proof); err != nil {
		return errors.Errorf("failed to transfer %d from %s: %w", amount, from, err)
	}

	fromBalance, err := t.NativeBalance(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return errors.Errorf("%s holds %d but %d were requested: %w", from, fromBalance, amount, ErrInsufficientFunds)
	}
	if err = t.setNativeBalance(from, fromBalance-amount); err != nil {
		return err
	}

	return t.Airdrop(to, amount)
}

// Airdrop credits native coins to address without debiting any other account.
func (t *Tx) Airdrop(to Address, amount uint64) error {
	balance, err := t.NativeBalance(to)
	if err != nil {
		return err
	}
	if balance > math.MaxUint64-amount {
		return errors.Errorf("failed to credit %d to %s: %w", amount, to, ErrBalanceOverflow)
	}

	return t.setNativeBalance(to, balance+amount)
}

func (t *Tx) setNativeBalance(address Address, balance uint64) error {
	return t.set(PrefixNativeBalance, address, marshalutil.New(marshalutil.Uint64Size).WriteUint64(balance).Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region mints ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Mint loads the Mint stored at address.
func (t *Tx) Mint(address Address) (mint *Mint, err error) {
	value, exists, err := t.get(PrefixMint, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("mint %s: %w", address, ErrAccountNotFound)
	}

	if mint, _, err = MintFromBytes(value); err != nil {
		return nil, errors.Errorf("failed to load mint %s: %w", address, err)
	}

	return mint, nil
}

// CreateMint creates a new Mint at address whose supply can be increased by authority.
func (t *Tx) CreateMint(address, authority Address, decimals uint8) error {
	if _, err := t.Mint(address); err == nil {
		return errors.Errorf("mint %s: %w", address, ErrAccountExists)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	return t.set(PrefixMint, address, (&Mint{Authority: authority, Decimals: decimals}).Bytes())
}

// MintTo creates amount new tokens in the given token account. The mint authority has to sign the transaction.
func (t *Tx) MintTo(mintAddress, destination Address, amount uint64) error {
	mint, err := t.Mint(mintAddress)
	if err != nil {
		return err
	}
	if !t.IsSigner(mint.Authority) {
		return errors.Errorf("mint authority %s did not sign: %w", mint.Authority, ErrMissingSignature)
	}

	account, err := t.TokenAccount(destination)
	if err != nil {
		return err
	}
	if account.Mint != mintAddress {
		return errors.Errorf("token account %s holds %s instead of %s: %w", destination, account.Mint, mintAddress, ErrMintMismatch)
	}
	if mint.Supply > math.MaxUint64-amount || account.Amount > math.MaxUint64-amount {
		return errors.Errorf("failed to mint %d: %w", amount, ErrBalanceOverflow)
	}

	mint.Supply += amount
	account.Amount += amount
	if err = t.set(PrefixMint, mintAddress, mint.Bytes()); err != nil {
		return err
	}

	return t.set(PrefixTokenAccount, destination, account.Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region token accounts ///////////////////////////////////////////////////////////////////////////////////////////////

// TokenAccount loads the TokenAccount stored at address.
func (t *Tx) TokenAccount(address Address) (account *TokenAccount, err error) {
	value, exists, err := t.get(PrefixTokenAccount, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("token account %s: %w", address, ErrAccountNotFound)
	}

	if account, _, err = TokenAccountFromBytes(value); err != nil {
		return nil, errors.Errorf("failed to load token account %s: %w", address, err)
	}

	return account, nil
}

// CreateTokenAccount creates an empty token account at address. The address has to be a signer or be derived by
// the program of the transaction (proven by proof).
func (t *Tx) CreateTokenAccount(address, mint, owner Address, proof *AuthorityProof) error {
	if err := t.authorize(address, proof); err != nil {
		return errors.Errorf("failed to create token account %s: %w", address, err)
	}

	return t.createTokenAccount(address, mint, owner)
}

// CreateAssociatedTokenAccount creates the canonical token account of owner for mint. It succeeds without changes if
// the account already exists.
func (t *Tx) CreateAssociatedTokenAccount(owner, mint Address) (address Address, err error) {
	address = AssociatedTokenAddress(owner, mint)

	existing, err := t.TokenAccount(address)
	if err == nil {
		if existing.Owner != owner || existing.Mint != mint {
			return EmptyAddress, errors.Errorf("associated token account %s: %w", address, ErrAccountExists)
		}
		return address, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return EmptyAddress, err
	}

	return address, t.createTokenAccount(address, mint, owner)
}

// TokenTransfer moves tokens between two token accounts of the same mint. The owner of the source account has to be
// a signer of the transaction or be authorized by proof.
func (t *Tx) TokenTransfer(from, to Address, amount uint64, proof *AuthorityProof) error {
	source, err := t.TokenAccount(from)
	if err != nil {
		return err
	}
	if err = t.authorize(source.Owner, proof); err != nil {
		return errors.Errorf("failed to transfer %d tokens from %s: %w", amount, from, err)
	}

	destination, err := t.TokenAccount(to)
	if err != nil {
		return err
	}
	if source.Mint != destination.Mint {
		return errors.Errorf("failed to transfer tokens from %s to %s: %w", from, to, ErrMintMismatch)
	}
	if source.Amount < amount {
		return errors.Errorf("token account %s holds %d but %d were requested: %w", from, source.Amount, amount, ErrInsufficientFunds)
	}

	if from == to {
		return nil
	}
	if destination.Amount > math.MaxUint64-amount {
		return errors.Errorf("failed to credit %d tokens to %s: %w", amount, to, ErrBalanceOverflow)
	}

	source.Amount -= amount
	destination.Amount += amount
	if err = t.set(PrefixTokenAccount, from, source.Bytes()); err != nil {
		return err
	}

	return t.set(PrefixTokenAccount, to, destination.Bytes())
}

func (t *Tx) createTokenAccount(address, mint, owner Address) error {
	if _, err := t.Mint(mint); err != nil {
		return err
	}

	if _, err := t.TokenAccount(address); err == nil {
		return errors.Errorf("token account %s: %w", address, ErrAccountExists)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	return t.set(PrefixTokenAccount, address, (&TokenAccount{Mint: mint, Owner: owner}).Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region records //////////////////////////////////////////////////////////////////////////////////////////////////////

// Record loads the program Record stored at address.
func (t *Tx) Record(address Address) (record *Record, err error) {
	value, exists, err := t.get(PrefixRecord, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("record %s: %w", address, ErrAccountNotFound)
	}

	if record, _, err = RecordFromBytes(value); err != nil {
		return nil, errors.Errorf("failed to load record %s: %w", address, err)
	}

	return record, nil
}

// CreateRecord stores a new Record owned by the program of the transaction. Records can only be created at
// addresses the program derived itself.
func (t *Tx) CreateRecord(address Address, data []byte, proof *AuthorityProof) error {
	if !proof.Authorizes(t.program, address) {
		return errors.Errorf("program %s can not create record %s: %w", t.program, address, ErrInvalidAuthorityProof)
	}

	if _, err := t.Record(address); err == nil {
		return errors.Errorf("record %s: %w", address, ErrAccountExists)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	return t.set(PrefixRecord, address, (&Record{Owner: t.program, Data: data}).Bytes())
}

// UpdateRecord replaces the data of an existing Record owned by the program of the transaction.
func (t *Tx) UpdateRecord(address Address, data []byte) error {
	record, err := t.Record(address)
	if err != nil {
		return err
	}
	if record.Owner != t.program {
		return errors.Errorf("program %s can not modify record %s: %w", t.program, address, ErrIllegalOwner)
	}

	record.Data = data

	return t.set(PrefixRecord, address, record.Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region storage //////////////////////////////////////////////////////////////////////////////////////////////////////

func (t *Tx) authorize(address Address, proof *AuthorityProof) error {
	if t.IsSigner(address) {
		return nil
	}
	if proof == nil {
		return errors.Errorf("%s: %w", address, ErrMissingSignature)
	}
	if !proof.Authorizes(t.program, address) {
		return errors.Errorf("%s is not derived by program %s: %w", address, t.program, ErrInvalidAuthorityProof)
	}

	return nil
}

func (t *Tx) get(prefix byte, address Address) (value []byte, exists bool, err error) {
	key := storageKey(prefix, address)
	if value, exists = t.writes[string(key)]; exists {
		return value, true, nil
	}

	if value, err = t.store.Get(key); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.Errorf("failed to read %s: %w", address, err)
	}

	return value, true, nil
}

func (t *Tx) set(prefix byte, address Address, value []byte) error {
	if t.readOnly {
		return errors.Errorf("failed to write %s: %w", address, ErrReadOnlyTransaction)
	}

	t.writes[string(storageKey(prefix, address))] = value

	return nil
}

func storageKey(prefix byte, address Address) []byte {
	return byteutils.ConcatBytes([]byte{prefix}, address.Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
