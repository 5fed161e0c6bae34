package ledger

import "github.com/cockroachdb/errors"

var (
	// ErrParseBytesFailed is returned if information can not be parsed from a sequence of bytes.
	ErrParseBytesFailed = errors.New("failed to parse bytes")
	// ErrAccountNotFound is returned if an account does not exist in the ledger.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned if an account that is supposed to be created already exists.
	ErrAccountExists = errors.New("account already exists")
	// ErrInsufficientFunds is returned if the source of a transfer can not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMissingSignature is returned if an account is debited without a signature of its owner.
	ErrMissingSignature = errors.New("missing required signature")
	// ErrInvalidSignature is returned if a signature does not verify against the public key.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidAuthorityProof is returned if an authority proof does not derive the account it is used for.
	ErrInvalidAuthorityProof = errors.New("invalid authority proof")
	// ErrMintMismatch is returned if tokens are moved between accounts of different mints.
	ErrMintMismatch = errors.New("token accounts belong to different mints")
	// ErrIllegalOwner is returned if a program tries to modify a record owned by another program.
	ErrIllegalOwner = errors.New("record is owned by another program")
	// ErrBalanceOverflow is returned if a credit would overflow the balance of an account.
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrNoOffCurveAddress is returned if no bump seed yields an address without a private key.
	ErrNoOffCurveAddress = errors.New("unable to find an off-curve address")
	// ErrReadOnlyTransaction is returned if a read only transaction tries to write.
	ErrReadOnlyTransaction = errors.New("transaction is read only")
	// ErrInvalidSeeds is returned if the seeds of an address derivation exceed the allowed limits.
	ErrInvalidSeeds = errors.New("invalid derivation seeds")
)
