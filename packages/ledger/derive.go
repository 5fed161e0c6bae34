package ledger

import (
	"filippo.io/edwards25519"
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/stringify"
	"golang.org/x/crypto/blake2b"
)

const (
	// MaxSeeds is the maximum number of seeds that can be used to derive an Address.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivationMarker = "ProgramDerivedAddress"
)

// region AuthorityProof ///////////////////////////////////////////////////////////////////////////////////////////////

// AuthorityProof proves that an Address was derived by a program from a set of seeds. It lets the program authorize
// debits of the derived account without holding a private key: anybody can recompute the derivation but only
// transactions executed on behalf of Program accept it.
type AuthorityProof struct {
	Program Address
	Seeds   [][]byte
	Bump    uint8
}

// NewAuthorityProof rebuilds the proof for a derivation whose bump is already known.
func NewAuthorityProof(program Address, bump uint8, seeds ...[]byte) *AuthorityProof {
	return &AuthorityProof{
		Program: program,
		Seeds:   seeds,
		Bump:    bump,
	}
}

// Address recomputes the derived Address.
func (a *AuthorityProof) Address() (Address, error) {
	return CreateDerivedAddress(a.Program, a.Bump, a.Seeds...)
}

// Authorizes returns true if the proof derives the given Address on behalf of program.
func (a *AuthorityProof) Authorizes(program, address Address) bool {
	if a == nil || a.Program != program {
		return false
	}

	derived, err := a.Address()

	return err == nil && derived == address
}

// String returns a human readable version of the AuthorityProof.
func (a *AuthorityProof) String() string {
	seeds := make([]string, len(a.Seeds))
	for i, seed := range a.Seeds {
		seeds[i] = string(seed)
	}

	return stringify.Struct("AuthorityProof",
		stringify.StructField("program", a.Program.Base58()),
		stringify.StructField("seeds", seeds),
		stringify.StructField("bump", a.Bump),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region derivation ///////////////////////////////////////////////////////////////////////////////////////////////////

// DeriveAddress searches the highest bump seed that turns the seeds into an Address which is not a valid ed25519
// point and returns the proof for it.
func DeriveAddress(program Address, seeds ...[]byte) (*AuthorityProof, error) {
	for bump := 255; bump >= 0; bump-- {
		if _, err := CreateDerivedAddress(program, uint8(bump), seeds...); err != nil {
			if errors.Is(err, ErrInvalidSeeds) {
				return nil, err
			}
			continue
		}

		return NewAuthorityProof(program, uint8(bump), seeds...), nil
	}

	return nil, errors.Errorf("failed to derive address for program %s: %w", program, ErrNoOffCurveAddress)
}

// MustDeriveAddress is like DeriveAddress but panics on error. It is meant for seeds that are constants.
func MustDeriveAddress(program Address, seeds ...[]byte) *AuthorityProof {
	proof, err := DeriveAddress(program, seeds...)
	if err != nil {
		panic(err)
	}

	return proof
}

// CreateDerivedAddress hashes the seeds, the bump and the program into an Address. It fails if the result is a
// point on the curve, because such an address could have a private key.
func CreateDerivedAddress(program Address, bump uint8, seeds ...[]byte) (address Address, err error) {
	if len(seeds) > MaxSeeds {
		return EmptyAddress, errors.Errorf("%d seeds exceed the maximum of %d: %w", len(seeds), MaxSeeds, ErrInvalidSeeds)
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return EmptyAddress, errors.Errorf("seed of length %d exceeds the maximum of %d: %w", len(seed), MaxSeedLength, ErrInvalidSeeds)
		}
	}

	parts := make([][]byte, 0, len(seeds)+3)
	parts = append(parts, seeds...)
	parts = append(parts, []byte{bump}, program.Bytes(), []byte(derivationMarker))
	address = blake2b.Sum256(byteutils.ConcatBytes(parts...))

	if isOnCurve(address) {
		return EmptyAddress, errors.Errorf("derived address %s is on the curve: %w", address, ErrInvalidAuthorityProof)
	}

	return address, nil
}

func isOnCurve(address Address) bool {
	_, err := new(edwards25519.Point).SetBytes(address[:])
	return err == nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
