package ledger

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	proof, err := DeriveAddress(testProgram, []byte("sol_vault"))
	require.NoError(t, err)

	again, err := DeriveAddress(testProgram, []byte("sol_vault"))
	require.NoError(t, err)
	assert.Equal(t, proof, again)

	address, err := proof.Address()
	require.NoError(t, err)
	assert.False(t, isOnCurve(address))
	assert.True(t, proof.Authorizes(testProgram, address))
	assert.False(t, proof.Authorizes(SystemProgram, address))

	other, err := DeriveAddress(testProgram, []byte("usdc_vault"))
	require.NoError(t, err)
	otherAddress, err := other.Address()
	require.NoError(t, err)
	assert.NotEqual(t, address, otherAddress)
	assert.False(t, proof.Authorizes(testProgram, otherAddress))
}

func TestDeriveAddress_DependsOnProgram(t *testing.T) {
	a := MustDeriveAddress(testProgram, []byte("faucet_state"))
	b := MustDeriveAddress(SystemProgram, []byte("faucet_state"))

	addressA, err := a.Address()
	require.NoError(t, err)
	addressB, err := b.Address()
	require.NoError(t, err)
	assert.NotEqual(t, addressA, addressB)
}

func TestDeriveAddress_InvalidSeeds(t *testing.T) {
	_, err := DeriveAddress(testProgram, make([]byte, MaxSeedLength+1))
	assert.True(t, errors.Is(err, ErrInvalidSeeds))

	seeds := make([][]byte, MaxSeeds+1)
	_, err = DeriveAddress(testProgram, seeds...)
	assert.True(t, errors.Is(err, ErrInvalidSeeds))
}

func TestPublicKeysAreOnCurve(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	assert.True(t, isOnCurve(AddressFromPublicKey(keyPair.PublicKey)))
}

func TestAddress_Base58(t *testing.T) {
	address := AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)

	restored, err := AddressFromBase58(address.Base58())
	require.NoError(t, err)
	assert.Equal(t, address, restored)

	_, err = AddressFromBase58("3mJr7AoUXx2Wqd")
	assert.True(t, errors.Is(err, ErrParseBytesFailed))
}

func TestVerifySigner(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	data := []byte("claim")

	signer, err := VerifySigner(keyPair.PublicKey, data, keyPair.PrivateKey.Sign(data))
	require.NoError(t, err)
	assert.Equal(t, AddressFromPublicKey(keyPair.PublicKey), signer.Address())

	_, err = VerifySigner(keyPair.PublicKey, []byte("deposit"), keyPair.PrivateKey.Sign(data))
	assert.True(t, errors.Is(err, ErrInvalidSignature))
}
