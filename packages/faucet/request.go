package faucet

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// region Operation ////////////////////////////////////////////////////////////////////////////////////////////////////

// Operation identifies what a signed Request asks for.
type Operation uint8

const (
	// OperationInitialize initializes the faucet with the caller as admin.
	OperationInitialize Operation = iota + 1
	// OperationDepositNative moves native coins from the caller into the native vault.
	OperationDepositNative
	// OperationDepositToken moves tokens from the caller into the token vault.
	OperationDepositToken
	// OperationClaim claims the faucet amounts for the caller.
	OperationClaim
	// OperationCreateTokenAccount creates the associated token account of the caller.
	OperationCreateTokenAccount
	// OperationCreateMint creates a mint with the caller as authority.
	OperationCreateMint
	// OperationMintTo mints tokens of a mint whose authority is the caller.
	OperationMintTo
)

var operationNames = map[Operation]string{
	OperationInitialize:         "Initialize",
	OperationDepositNative:      "DepositNative",
	OperationDepositToken:       "DepositToken",
	OperationClaim:              "Claim",
	OperationCreateTokenAccount: "CreateTokenAccount",
	OperationCreateMint:         "CreateMint",
	OperationMintTo:             "MintTo",
}

// String returns the name of the Operation.
func (o Operation) String() string {
	if name, exists := operationNames[o]; exists {
		return name
	}

	return "Operation(unknown)"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Request //////////////////////////////////////////////////////////////////////////////////////////////////////

// ErrInvalidRequest is returned if a Request can not be parsed or names an unknown operation.
var ErrInvalidRequest = errors.New("invalid request")

// Request is an operation signed by the key of its caller. The signature covers every field except itself, so the
// caller proves control over the identity the operation is executed for.
type Request struct {
	Operation Operation
	Caller    ed25519.PublicKey
	// Mint is the mint the operation refers to (if any).
	Mint ledger.Address
	// Recipient is the owner credited by OperationMintTo.
	Recipient ledger.Address
	Amount    uint64
	Timestamp time.Time
	Signature ed25519.Signature
}

// NewRequest creates an unsigned Request issued now.
func NewRequest(operation Operation, caller ed25519.PublicKey) *Request {
	return &Request{
		Operation: operation,
		Caller:    caller,
		Timestamp: time.Now(),
	}
}

// RequestFromBytes unmarshals a Request from a sequence of bytes.
func RequestFromBytes(bytes []byte) (request *Request, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if request, err = RequestFromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, err
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// RequestFromMarshalUtil unmarshals a Request using a MarshalUtil (for easier unmarshaling).
func RequestFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (request *Request, err error) {
	request = &Request{}

	operation, err := marshalUtil.ReadUint8()
	if err != nil {
		return nil, errors.Errorf("failed to parse operation (%v): %w", err, ErrInvalidRequest)
	}
	if _, known := operationNames[Operation(operation)]; !known {
		return nil, errors.Errorf("unknown operation %d: %w", operation, ErrInvalidRequest)
	}
	request.Operation = Operation(operation)

	callerBytes, err := marshalUtil.ReadBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, errors.Errorf("failed to parse caller (%v): %w", err, ErrInvalidRequest)
	}
	copy(request.Caller[:], callerBytes)

	if request.Mint, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse mint (%v): %w", err, ErrInvalidRequest)
	}
	if request.Recipient, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse recipient (%v): %w", err, ErrInvalidRequest)
	}
	if request.Amount, err = marshalUtil.ReadUint64(); err != nil {
		return nil, errors.Errorf("failed to parse amount (%v): %w", err, ErrInvalidRequest)
	}
	if request.Timestamp, err = marshalUtil.ReadTime(); err != nil {
		return nil, errors.Errorf("failed to parse timestamp (%v): %w", err, ErrInvalidRequest)
	}

	signatureBytes, err := marshalUtil.ReadBytes(ed25519.SignatureSize)
	if err != nil {
		return nil, errors.Errorf("failed to parse signature (%v): %w", err, ErrInvalidRequest)
	}
	copy(request.Signature[:], signatureBytes)

	return request, nil
}

// Sign signs the Request with the key pair of the caller.
func (r *Request) Sign(keyPair ed25519.KeyPair) *Request {
	r.Caller = keyPair.PublicKey
	r.Signature = keyPair.PrivateKey.Sign(r.EssenceBytes())

	return r
}

// Verify checks the signature and returns the Signer of the caller.
func (r *Request) Verify() (ledger.Signer, error) {
	return ledger.VerifySigner(r.Caller, r.EssenceBytes(), r.Signature)
}

// EssenceBytes returns the signed part of the Request.
func (r *Request) EssenceBytes() []byte {
	return r.essence().Bytes()
}

// Bytes returns a marshaled version of the Request.
func (r *Request) Bytes() []byte {
	return r.essence().WriteBytes(r.Signature[:]).Bytes()
}

// String returns a human readable version of the Request.
func (r *Request) String() string {
	return stringify.Struct("Request",
		stringify.StructField("operation", r.Operation.String()),
		stringify.StructField("caller", ledger.AddressFromPublicKey(r.Caller).Base58()),
		stringify.StructField("mint", r.Mint.Base58()),
		stringify.StructField("recipient", r.Recipient.Base58()),
		stringify.StructField("amount", r.Amount),
		stringify.StructField("timestamp", r.Timestamp),
	)
}

func (r *Request) essence() *marshalutil.MarshalUtil {
	return marshalutil.New(marshalutil.Uint8Size + ed25519.PublicKeySize + 2*ledger.AddressLength + marshalutil.Uint64Size + marshalutil.Int64Size).
		WriteUint8(uint8(r.Operation)).
		WriteBytes(r.Caller[:]).
		WriteBytes(r.Mint.Bytes()).
		WriteBytes(r.Recipient.Bytes()).
		WriteUint64(r.Amount).
		WriteTime(r.Timestamp)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
