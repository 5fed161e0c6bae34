package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
)

// Signer is an Address whose owner has proven control over it. It can only be created by verifying a signature or
// from a key pair, so holding a Signer means the ledger may debit the account on its behalf.
type Signer struct {
	address Address
}

// NewSigner returns the Signer of a locally held key pair.
func NewSigner(keyPair ed25519.KeyPair) Signer {
	return Signer{address: AddressFromPublicKey(keyPair.PublicKey)}
}

// VerifySigner checks the signature of data and returns the Signer of the public key if it is valid.
func VerifySigner(publicKey ed25519.PublicKey, data []byte, signature ed25519.Signature) (Signer, error) {
	if !publicKey.VerifySignature(data, signature) {
		return Signer{}, errors.Errorf("signature of %s does not match: %w", AddressFromPublicKey(publicKey), ErrInvalidSignature)
	}

	return Signer{address: AddressFromPublicKey(publicKey)}, nil
}

// Address returns the Address that was proven.
func (s Signer) Address() Address {
	return s.address
}

// String returns a human readable version of the Signer.
func (s Signer) String() string {
	return s.address.Base58()
}
