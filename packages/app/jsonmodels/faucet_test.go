package jsonmodels

import (
	"encoding/json"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

func TestSignedRequest(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	mint := ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)

	request := faucet.NewRequest(faucet.OperationDepositToken, keyPair.PublicKey)
	request.Mint = mint
	request.Amount = 7
	request.Sign(keyPair)

	encoded, err := json.Marshal(NewSignedRequest(request))
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "recipient")

	var decoded SignedRequest
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	restored, err := decoded.Request(faucet.OperationDepositToken)
	require.NoError(t, err)
	assert.Equal(t, mint, restored.Mint)
	assert.Equal(t, ledger.EmptyAddress, restored.Recipient)

	signer, err := restored.Verify()
	require.NoError(t, err)
	assert.Equal(t, ledger.AddressFromPublicKey(keyPair.PublicKey), signer.Address())

	// the operation is part of the signed essence
	replayed, err := decoded.Request(faucet.OperationDepositNative)
	require.NoError(t, err)
	_, err = replayed.Verify()
	assert.Error(t, err)
}

func TestSignedRequest_Malformed(t *testing.T) {
	for name, request := range map[string]*SignedRequest{
		"public key": {PublicKey: "not base58!", Signature: "1"},
		"mint":       {PublicKey: ledger.SystemProgram.Base58(), Mint: "abc", Signature: "1"},
		"signature":  {PublicKey: ledger.SystemProgram.Base58(), Signature: "abc"},
	} {
		_, err := request.Request(faucet.OperationClaim)
		assert.Error(t, err, name)
	}
}
