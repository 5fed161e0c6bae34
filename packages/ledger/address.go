package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/mr-tron/base58"
)

// AddressLength contains the amount of bytes that a marshaled version of an Address contains.
const AddressLength = 32

// EmptyAddress is an Address that contains only zero bytes.
var EmptyAddress Address

// Address identifies an account in the ledger. Addresses of users are ed25519 public keys, addresses of program
// owned accounts are derived with DeriveAddress and have no private key.
type Address [AddressLength]byte

// AddressFromPublicKey returns the Address that is controlled by the given public key.
func AddressFromPublicKey(publicKey ed25519.PublicKey) (address Address) {
	copy(address[:], publicKey.Bytes())
	return address
}

// AddressFromBytes unmarshals an Address from a sequence of bytes.
func AddressFromBytes(bytes []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromMarshalUtil unmarshals an Address using a MarshalUtil (for easier unmarshaling).
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressBytes, err := marshalUtil.ReadBytes(AddressLength)
	if err != nil {
		err = errors.Errorf("failed to parse Address (%v): %w", err, ErrParseBytesFailed)
		return
	}
	copy(address[:], addressBytes)

	return
}

// AddressFromBase58 creates an Address from a base58 encoded string.
func AddressFromBase58(base58String string) (address Address, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, ErrParseBytesFailed)
		return
	}
	if len(bytes) != AddressLength {
		err = errors.Errorf("invalid Address length %d: %w", len(bytes), ErrParseBytesFailed)
		return
	}

	address, _, err = AddressFromBytes(bytes)
	return
}

// MustAddressFromBase58 is like AddressFromBase58 but panics if the string can not be decoded.
func MustAddressFromBase58(base58String string) Address {
	address, err := AddressFromBase58(base58String)
	if err != nil {
		panic(err)
	}

	return address
}

// PublicKey returns the ed25519 public key that corresponds to the Address.
func (a Address) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(a)
}

// Bytes returns a marshaled version of the Address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Base58 returns a base58 encoded version of the Address.
func (a Address) Base58() string {
	return base58.Encode(a[:])
}

// String returns a human readable version of the Address.
func (a Address) String() string {
	return a.Base58()
}
