package faucet

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

func TestClaimLedger(t *testing.T) {
	tf := newTestFramework(t)
	identity := ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
	program := tf.faucet.Addresses().Program

	errAbort := errors.New("abort")
	_, err := tf.ledger.Update(context.Background(), program, func(tx *ledger.Tx) error {
		record, err := NewClaimLedger(tx, tf.faucet.Addresses()).Get(identity)
		require.NoError(t, err)
		assert.False(t, record.HasClaimed)

		return errAbort
	})
	assert.True(t, errors.Is(err, errAbort))

	require.NoError(t, tf.ledger.View(context.Background(), func(tx *ledger.Tx) error {
		_, exists, err := NewClaimLedger(tx, tf.faucet.Addresses()).Lookup(identity)
		assert.False(t, exists)
		return err
	}))

	_, err = tf.ledger.Update(context.Background(), program, func(tx *ledger.Tx) error {
		claims := NewClaimLedger(tx, tf.faucet.Addresses())
		if _, err := claims.Get(identity); err != nil {
			return err
		}

		return claims.MarkClaimed(identity)
	})
	require.NoError(t, err)

	require.NoError(t, tf.ledger.View(context.Background(), func(tx *ledger.Tx) error {
		record, exists, err := NewClaimLedger(tx, tf.faucet.Addresses()).Lookup(identity)
		assert.True(t, exists)
		assert.True(t, record.HasClaimed)
		return err
	}))
}

func TestClaimRecordFromBytes(t *testing.T) {
	record, consumedBytes, err := ClaimRecordFromBytes((&ClaimRecord{HasClaimed: true}).Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, consumedBytes)
	assert.True(t, record.HasClaimed)

	_, _, err = ClaimRecordFromBytes(nil)
	assert.True(t, errors.Is(err, ledger.ErrParseBytesFailed))
}

func TestIsAdministrator(t *testing.T) {
	admin := ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
	config := &Config{Administrator: admin}

	assert.True(t, IsAdministrator(admin, config))
	assert.False(t, IsAdministrator(ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey), config))
	assert.False(t, IsAdministrator(admin, nil))
}
