package faucet

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

func TestFaucet_Initialize(t *testing.T) {
	tf := newTestFramework(t)

	_, err := tf.faucet.Claim(context.Background(), tf.newClaimant())
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, _, err = tf.faucet.Initialize(context.Background(), tf.admin, ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey))
	assert.True(t, errors.Is(err, ErrMintNotFound))

	initialized := atomic.NewInt32(0)
	tf.faucet.Events.Initialized.Attach(event.NewClosure(func(*InitializedEvent) { initialized.Inc() }))

	config, txID, err := tf.faucet.Initialize(context.Background(), tf.admin, tf.mint)
	require.NoError(t, err)
	assert.NotEqual(t, ledger.EmptyTransactionID, txID)
	assert.Equal(t, tf.admin.Address(), config.Administrator)
	assert.Equal(t, tf.mint, config.TokenMint)
	assert.Equal(t, tf.faucet.Addresses().TokenVaultAddress(), config.TokenVault)
	assert.Equal(t, tf.faucet.Addresses().NativeVaultAddress(), config.NativeVault)
	assert.EqualValues(t, 1, initialized.Load())

	stored, err := tf.faucet.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config, stored)

	_, _, err = tf.faucet.Initialize(context.Background(), ledger.NewSigner(ed25519.GenerateKeyPair()), tf.mint)
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))

	stored, err = tf.faucet.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tf.admin.Address(), stored.Administrator)
	assert.Equal(t, config, stored)

	balances, err := tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{}, balances)
}

func TestFaucet_Deposit(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()

	_, err := tf.faucet.DepositNative(context.Background(), tf.admin, 0)
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = tf.faucet.DepositNative(context.Background(), tf.admin, 3*NativeClaimAmount)
	require.NoError(t, err)
	_, err = tf.faucet.DepositToken(context.Background(), tf.admin, 2*TokenClaimAmount)
	require.NoError(t, err)

	balances, err := tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{Native: 3 * NativeClaimAmount, Token: 2 * TokenClaimAmount}, balances)

	intruder := ledger.NewSigner(ed25519.GenerateKeyPair())
	tf.update(func(tx *ledger.Tx) error { return tx.Airdrop(intruder.Address(), NativeClaimAmount) })
	_, err = tf.faucet.DepositNative(context.Background(), intruder, NativeClaimAmount)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = tf.faucet.DepositNative(context.Background(), tf.admin, 100*NativeClaimAmount)
	assert.True(t, errors.Is(err, ErrInsufficientCallerBalance))
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))

	intruderTokenAccount := ledger.EmptyAddress
	tf.update(func(tx *ledger.Tx) (err error) {
		if intruderTokenAccount, err = tx.CreateAssociatedTokenAccount(intruder.Address(), tf.mint); err != nil {
			return err
		}
		return tx.MintTo(tf.mint, intruderTokenAccount, TokenClaimAmount)
	}, tf.admin)
	_, err = tf.faucet.DepositToken(context.Background(), intruder, TokenClaimAmount)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, TokenClaimAmount, tf.tokenBalance(intruderTokenAccount))

	_, err = tf.faucet.DepositToken(context.Background(), tf.admin, 100*TokenClaimAmount)
	assert.True(t, errors.Is(err, ErrInsufficientCallerBalance))

	balances, err = tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{Native: 3 * NativeClaimAmount, Token: 2 * TokenClaimAmount}, balances)
}

func TestFaucet_Claim(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(2*NativeClaimAmount, 2*TokenClaimAmount)

	claimed := atomic.NewInt32(0)
	tf.faucet.Events.Claimed.Attach(event.NewClosure(func(*ClaimedEvent) { claimed.Inc() }))
	failed := atomic.NewInt32(0)
	tf.faucet.Events.ClaimFailed.Attach(event.NewClosure(func(*ClaimFailedEvent) { failed.Inc() }))

	claimant := tf.newClaimant()
	record, err := tf.faucet.ClaimRecord(context.Background(), claimant.Address())
	require.NoError(t, err)
	assert.False(t, record.HasClaimed)

	receipt, err := tf.faucet.Claim(context.Background(), claimant)
	require.NoError(t, err)
	assert.Equal(t, claimant.Address(), receipt.Claimant)
	assert.Equal(t, ledger.AssociatedTokenAddress(claimant.Address(), tf.mint), receipt.TokenAccount)
	assert.Equal(t, NativeClaimAmount, tf.nativeBalance(claimant.Address()))
	assert.Equal(t, TokenClaimAmount, tf.tokenBalance(receipt.TokenAccount))

	record, err = tf.faucet.ClaimRecord(context.Background(), claimant.Address())
	require.NoError(t, err)
	assert.True(t, record.HasClaimed)

	_, err = tf.faucet.Claim(context.Background(), claimant)
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))
	assert.Equal(t, NativeClaimAmount, tf.nativeBalance(claimant.Address()))

	balances, err := tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{Native: NativeClaimAmount, Token: TokenClaimAmount}, balances)

	assert.EqualValues(t, 1, claimed.Load())
	assert.EqualValues(t, 1, failed.Load())
}

func TestFaucet_ClaimTwoClaimants(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(3*NativeClaimAmount, 3*TokenClaimAmount)

	claimants := []ledger.Signer{tf.newClaimant(), tf.newClaimant()}
	for _, claimant := range claimants {
		_, err := tf.faucet.Claim(context.Background(), claimant)
		require.NoError(t, err)
	}

	balances, err := tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{Native: NativeClaimAmount, Token: TokenClaimAmount}, balances)

	for _, claimant := range claimants {
		record, err := tf.faucet.ClaimRecord(context.Background(), claimant.Address())
		require.NoError(t, err)
		assert.True(t, record.HasClaimed)
		assert.Equal(t, NativeClaimAmount, tf.nativeBalance(claimant.Address()))
		assert.Equal(t, TokenClaimAmount, tf.tokenBalance(ledger.AssociatedTokenAddress(claimant.Address(), tf.mint)))
	}

	record, err := tf.faucet.ClaimRecord(context.Background(), tf.newClaimant().Address())
	require.NoError(t, err)
	assert.False(t, record.HasClaimed)
}

func TestFaucet_ClaimWithoutTokenAccount(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(NativeClaimAmount, TokenClaimAmount)

	claimant := ledger.NewSigner(ed25519.GenerateKeyPair())
	_, err := tf.faucet.Claim(context.Background(), claimant)
	assert.True(t, errors.Is(err, ErrInvalidTokenAccount))

	// a token account of the claimant for the faucet mint is only accepted at the associated address
	otherAccount := ledger.NewSigner(ed25519.GenerateKeyPair())
	tf.update(func(tx *ledger.Tx) error {
		return tx.CreateTokenAccount(otherAccount.Address(), tf.mint, claimant.Address(), nil)
	}, otherAccount)
	_, err = tf.faucet.Claim(context.Background(), claimant)
	assert.True(t, errors.Is(err, ErrInvalidTokenAccount))
	assert.Zero(t, tf.tokenBalance(otherAccount.Address()))

	record, err := tf.faucet.ClaimRecord(context.Background(), claimant.Address())
	require.NoError(t, err)
	assert.False(t, record.HasClaimed)
}

func TestFaucet_ClaimUnderfundedNativeVault(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(NativeClaimAmount-1, TokenClaimAmount)

	claimant := tf.newClaimant()
	_, err := tf.faucet.Claim(context.Background(), claimant)
	assert.True(t, errors.Is(err, ErrInsufficientSolBalance))

	assert.Zero(t, tf.nativeBalance(claimant.Address()))
	assert.Zero(t, tf.tokenBalance(ledger.AssociatedTokenAddress(claimant.Address(), tf.mint)))

	record, err := tf.faucet.ClaimRecord(context.Background(), claimant.Address())
	require.NoError(t, err)
	assert.False(t, record.HasClaimed)

	// the claimant can retry once the vault was refilled
	tf.fund(1, 0)
	_, err = tf.faucet.Claim(context.Background(), claimant)
	require.NoError(t, err)
}

func TestFaucet_ClaimUnderfundedTokenVault(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(NativeClaimAmount, TokenClaimAmount-1)

	claimant := tf.newClaimant()
	_, err := tf.faucet.Claim(context.Background(), claimant)
	assert.True(t, errors.Is(err, ErrInsufficientTokenBalance))

	// the native transfer was rolled back together with the failed token transfer
	assert.Zero(t, tf.nativeBalance(claimant.Address()))
	balances, err := tf.faucet.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Balances{Native: NativeClaimAmount, Token: TokenClaimAmount - 1}, balances)

	record, err := tf.faucet.ClaimRecord(context.Background(), claimant.Address())
	require.NoError(t, err)
	assert.False(t, record.HasClaimed)
}

func TestFaucet_ConcurrentClaims(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(10*NativeClaimAmount, 10*TokenClaimAmount)

	claimant := tf.newClaimant()
	succeeded := atomic.NewInt32(0)
	alreadyClaimed := atomic.NewInt32(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tf.faucet.Claim(context.Background(), claimant)
			switch {
			case err == nil:
				succeeded.Inc()
			case errors.Is(err, ErrAlreadyClaimed):
				alreadyClaimed.Inc()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	assert.EqualValues(t, 7, alreadyClaimed.Load())
	assert.Equal(t, NativeClaimAmount, tf.nativeBalance(claimant.Address()))
}

func TestFaucet_SeparatePrograms(t *testing.T) {
	tf := newTestFramework(t)
	tf.initialize()
	tf.fund(NativeClaimAmount, TokenClaimAmount)

	otherProgram := ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
	other, err := New(tf.ledger, WithProgram(otherProgram))
	require.NoError(t, err)
	assert.NotEqual(t, tf.faucet.Addresses().ConfigAddress(), other.Addresses().ConfigAddress())

	_, err = other.Config(context.Background())
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, _, err = other.Initialize(context.Background(), tf.admin, tf.mint)
	require.NoError(t, err)

	// the other program can not drain the vaults of the first one
	_, err = other.Claim(context.Background(), tf.newClaimant())
	assert.True(t, errors.Is(err, ErrInsufficientSolBalance))
}

// region test framework ///////////////////////////////////////////////////////////////////////////////////////////////

type testFramework struct {
	t      *testing.T
	ledger *ledger.Ledger
	faucet *Faucet
	admin  ledger.Signer
	mint   ledger.Address
}

func newTestFramework(t *testing.T) (tf *testFramework) {
	tf = &testFramework{
		t:      t,
		ledger: ledger.New(),
		admin:  ledger.NewSigner(ed25519.GenerateKeyPair()),
		mint:   ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey),
	}

	var err error
	tf.faucet, err = New(tf.ledger)
	require.NoError(t, err)

	tf.update(func(tx *ledger.Tx) error {
		if err := tx.CreateMint(tf.mint, tf.admin.Address(), 6); err != nil {
			return err
		}
		adminTokenAccount, err := tx.CreateAssociatedTokenAccount(tf.admin.Address(), tf.mint)
		if err != nil {
			return err
		}
		if err = tx.MintTo(tf.mint, adminTokenAccount, 10*TokenClaimAmount); err != nil {
			return err
		}

		return tx.Airdrop(tf.admin.Address(), 10*NativeClaimAmount)
	}, tf.admin)

	return tf
}

func (tf *testFramework) update(transaction func(tx *ledger.Tx) error, signers ...ledger.Signer) {
	_, err := tf.ledger.Update(context.Background(), ledger.SystemProgram, transaction, signers...)
	require.NoError(tf.t, err)
}

func (tf *testFramework) initialize() {
	_, _, err := tf.faucet.Initialize(context.Background(), tf.admin, tf.mint)
	require.NoError(tf.t, err)
}

func (tf *testFramework) fund(native, token uint64) {
	if native > 0 {
		_, err := tf.faucet.DepositNative(context.Background(), tf.admin, native)
		require.NoError(tf.t, err)
	}
	if token > 0 {
		_, err := tf.faucet.DepositToken(context.Background(), tf.admin, token)
		require.NoError(tf.t, err)
	}
}

func (tf *testFramework) newClaimant() ledger.Signer {
	claimant := ledger.NewSigner(ed25519.GenerateKeyPair())
	tf.update(func(tx *ledger.Tx) error {
		_, err := tx.CreateAssociatedTokenAccount(claimant.Address(), tf.mint)
		return err
	})

	return claimant
}

func (tf *testFramework) nativeBalance(address ledger.Address) (balance uint64) {
	require.NoError(tf.t, tf.ledger.View(context.Background(), func(tx *ledger.Tx) (err error) {
		balance, err = tx.NativeBalance(address)
		return err
	}))

	return balance
}

func (tf *testFramework) tokenBalance(address ledger.Address) uint64 {
	var account *ledger.TokenAccount
	require.NoError(tf.t, tf.ledger.View(context.Background(), func(tx *ledger.Tx) (err error) {
		account, err = tx.TokenAccount(address)
		return err
	}))

	return account.Amount
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
