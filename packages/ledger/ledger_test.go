package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = MustAddressFromBase58("8BiHU1nfA6eReeipY7Z9eMSxg8JFthY3PaDJcj8Zmq4u")

func newTestSigner() Signer {
	return NewSigner(ed25519.GenerateKeyPair())
}

func nativeBalance(t *testing.T, l *Ledger, address Address) (balance uint64) {
	require.NoError(t, l.View(context.Background(), func(tx *Tx) (err error) {
		balance, err = tx.NativeBalance(address)
		return err
	}))
	return balance
}

func tokenBalance(t *testing.T, l *Ledger, address Address) uint64 {
	var account *TokenAccount
	require.NoError(t, l.View(context.Background(), func(tx *Tx) (err error) {
		account, err = tx.TokenAccount(address)
		return err
	}))
	return account.Amount
}

func TestLedger_Transfer(t *testing.T) {
	l := New(WithStore(mapdb.NewMapDB()))
	alice, bob := newTestSigner(), newTestSigner()

	_, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Airdrop(alice.Address(), 1000)
	})
	require.NoError(t, err)

	txID, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Transfer(alice.Address(), bob.Address(), 400, nil)
	}, alice)
	require.NoError(t, err)
	assert.NotEqual(t, EmptyTransactionID, txID)

	assert.EqualValues(t, 600, nativeBalance(t, l, alice.Address()))
	assert.EqualValues(t, 400, nativeBalance(t, l, bob.Address()))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Transfer(alice.Address(), bob.Address(), 1, nil)
	}, bob)
	assert.True(t, errors.Is(err, ErrMissingSignature))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Transfer(alice.Address(), bob.Address(), 601, nil)
	}, alice)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.EqualValues(t, 600, nativeBalance(t, l, alice.Address()))
}

func TestLedger_UpdateIsAllOrNothing(t *testing.T) {
	l := New()
	alice, bob := newTestSigner(), newTestSigner()

	_, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Airdrop(alice.Address(), 100)
	})
	require.NoError(t, err)

	failure := errors.New("second step failed")
	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		if err := tx.Transfer(alice.Address(), bob.Address(), 60, nil); err != nil {
			return err
		}

		// the staged write is visible inside the transaction
		balance, err := tx.NativeBalance(bob.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 60, balance)

		return failure
	}, alice)
	assert.True(t, errors.Is(err, failure))

	assert.EqualValues(t, 100, nativeBalance(t, l, alice.Address()))
	assert.EqualValues(t, 0, nativeBalance(t, l, bob.Address()))
}

func TestLedger_CancelledContext(t *testing.T) {
	l := New()
	alice := newTestSigner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Update(ctx, SystemProgram, func(tx *Tx) error {
		return tx.Airdrop(alice.Address(), 100)
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.EqualValues(t, 0, nativeBalance(t, l, alice.Address()))
}

func TestLedger_ViewIsReadOnly(t *testing.T) {
	l := New()

	err := l.View(context.Background(), func(tx *Tx) error {
		return tx.Airdrop(newTestSigner().Address(), 1)
	})
	assert.True(t, errors.Is(err, ErrReadOnlyTransaction))
}

func TestLedger_Tokens(t *testing.T) {
	l := New()
	authority, alice, bob := newTestSigner(), newTestSigner(), newTestSigner()
	mint := newTestSigner().Address()

	var aliceAccount, bobAccount Address
	_, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) (err error) {
		if err = tx.CreateMint(mint, authority.Address(), 6); err != nil {
			return err
		}
		if aliceAccount, err = tx.CreateAssociatedTokenAccount(alice.Address(), mint); err != nil {
			return err
		}
		if bobAccount, err = tx.CreateAssociatedTokenAccount(bob.Address(), mint); err != nil {
			return err
		}
		return tx.MintTo(mint, aliceAccount, 5000)
	}, authority)
	require.NoError(t, err)
	assert.Equal(t, AssociatedTokenAddress(alice.Address(), mint), aliceAccount)

	// creating the associated account again is a no-op
	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		_, createErr := tx.CreateAssociatedTokenAccount(alice.Address(), mint)
		return createErr
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5000, tokenBalance(t, l, aliceAccount))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.TokenTransfer(aliceAccount, bobAccount, 1500, nil)
	}, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 3500, tokenBalance(t, l, aliceAccount))
	assert.EqualValues(t, 1500, tokenBalance(t, l, bobAccount))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.TokenTransfer(aliceAccount, bobAccount, 1, nil)
	}, bob)
	assert.True(t, errors.Is(err, ErrMissingSignature))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.MintTo(mint, bobAccount, 1)
	}, bob)
	assert.True(t, errors.Is(err, ErrMissingSignature))
}

func TestLedger_TokenTransferMintMismatch(t *testing.T) {
	l := New()
	authority, alice := newTestSigner(), newTestSigner()
	mintA, mintB := newTestSigner().Address(), newTestSigner().Address()

	_, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		require.NoError(t, tx.CreateMint(mintA, authority.Address(), 6))
		require.NoError(t, tx.CreateMint(mintB, authority.Address(), 6))
		accountA, err := tx.CreateAssociatedTokenAccount(alice.Address(), mintA)
		require.NoError(t, err)
		_, err = tx.CreateAssociatedTokenAccount(alice.Address(), mintB)
		require.NoError(t, err)
		return tx.MintTo(mintA, accountA, 10)
	}, authority)
	require.NoError(t, err)

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.TokenTransfer(AssociatedTokenAddress(alice.Address(), mintA), AssociatedTokenAddress(alice.Address(), mintB), 5, nil)
	}, alice)
	assert.True(t, errors.Is(err, ErrMintMismatch))
}

func TestLedger_ProgramAuthority(t *testing.T) {
	l := New()
	bob := newTestSigner()
	vault := MustDeriveAddress(testProgram, []byte("sol_vault"))
	vaultAddress, err := vault.Address()
	require.NoError(t, err)

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Airdrop(vaultAddress, 500)
	})
	require.NoError(t, err)

	// the proof only works for transactions of the deriving program
	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Transfer(vaultAddress, bob.Address(), 100, vault)
	})
	assert.True(t, errors.Is(err, ErrInvalidAuthorityProof))

	_, err = l.Update(context.Background(), testProgram, func(tx *Tx) error {
		return tx.Transfer(vaultAddress, bob.Address(), 100, vault)
	})
	require.NoError(t, err)
	assert.EqualValues(t, 400, nativeBalance(t, l, vaultAddress))

	forged := NewAuthorityProof(testProgram, vault.Bump, []byte("other_vault"))
	_, err = l.Update(context.Background(), testProgram, func(tx *Tx) error {
		return tx.Transfer(vaultAddress, bob.Address(), 100, forged)
	})
	assert.Error(t, err)
}

func TestLedger_Records(t *testing.T) {
	l := New()
	state := MustDeriveAddress(testProgram, []byte("faucet_state"))
	stateAddress, err := state.Address()
	require.NoError(t, err)

	_, err = l.Update(context.Background(), testProgram, func(tx *Tx) error {
		return tx.CreateRecord(stateAddress, []byte("v1"), state)
	})
	require.NoError(t, err)

	_, err = l.Update(context.Background(), testProgram, func(tx *Tx) error {
		return tx.CreateRecord(stateAddress, []byte("v2"), state)
	})
	assert.True(t, errors.Is(err, ErrAccountExists))

	_, err = l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.UpdateRecord(stateAddress, []byte("v2"))
	})
	assert.True(t, errors.Is(err, ErrIllegalOwner))

	_, err = l.Update(context.Background(), testProgram, func(tx *Tx) error {
		return tx.UpdateRecord(stateAddress, []byte("v3"))
	})
	require.NoError(t, err)

	require.NoError(t, l.View(context.Background(), func(tx *Tx) error {
		record, err := tx.Record(stateAddress)
		require.NoError(t, err)
		assert.Equal(t, testProgram, record.Owner)
		assert.Equal(t, []byte("v3"), record.Data)
		return nil
	}))
}

func TestLedger_ConcurrentTransfers(t *testing.T) {
	l := New()
	alice, bob := newTestSigner(), newTestSigner()

	_, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
		return tx.Airdrop(alice.Address(), 50)
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mutex sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Update(context.Background(), SystemProgram, func(tx *Tx) error {
				return tx.Transfer(alice.Address(), bob.Address(), 1, nil)
			}, alice); err == nil {
				mutex.Lock()
				succeeded++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	assert.EqualValues(t, 0, nativeBalance(t, l, alice.Address()))
	assert.EqualValues(t, 50, nativeBalance(t, l, bob.Address()))
}
