package jsonmodels

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/mr-tron/base58"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// region SignedRequest ////////////////////////////////////////////////////////////////////////////////////////////////

// SignedRequest is the JSON form of a faucet.Request. The operation is given by the endpoint it is sent to.
type SignedRequest struct {
	// base58 encoded public key of the caller
	PublicKey string `json:"publicKey"`
	Mint      string `json:"mint,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Amount    uint64 `json:"amount,omitempty"`
	// unix timestamp in nanoseconds
	Timestamp int64 `json:"timestamp"`
	// base58 encoded ed25519 signature of the request essence
	Signature string `json:"signature"`
}

// NewSignedRequest returns the JSON form of request.
func NewSignedRequest(request *faucet.Request) *SignedRequest {
	signedRequest := &SignedRequest{
		PublicKey: base58.Encode(request.Caller[:]),
		Amount:    request.Amount,
		Timestamp: request.Timestamp.UnixNano(),
		Signature: base58.Encode(request.Signature[:]),
	}
	if request.Mint != ledger.EmptyAddress {
		signedRequest.Mint = request.Mint.Base58()
	}
	if request.Recipient != ledger.EmptyAddress {
		signedRequest.Recipient = request.Recipient.Base58()
	}

	return signedRequest
}

// Request converts the SignedRequest into a faucet.Request for the given operation. The signature is not verified.
func (s *SignedRequest) Request(operation faucet.Operation) (request *faucet.Request, err error) {
	caller, err := ledger.AddressFromBase58(s.PublicKey)
	if err != nil {
		return nil, errors.Errorf("invalid public key: %w", err)
	}

	request = &faucet.Request{
		Operation: operation,
		Caller:    caller.PublicKey(),
		Amount:    s.Amount,
		Timestamp: time.Unix(0, s.Timestamp),
	}
	if s.Mint != "" {
		if request.Mint, err = ledger.AddressFromBase58(s.Mint); err != nil {
			return nil, errors.Errorf("invalid mint: %w", err)
		}
	}
	if s.Recipient != "" {
		if request.Recipient, err = ledger.AddressFromBase58(s.Recipient); err != nil {
			return nil, errors.Errorf("invalid recipient: %w", err)
		}
	}

	signature, err := base58.Decode(s.Signature)
	if err != nil {
		return nil, errors.Errorf("invalid signature encoding: %w", err)
	}
	if len(signature) != ed25519.SignatureSize {
		return nil, errors.Errorf("signature has %d bytes instead of %d: %w", len(signature), ed25519.SignatureSize, faucet.ErrInvalidRequest)
	}
	copy(request.Signature[:], signature)

	return request, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionResponse is returned by endpoints that execute a single ledger transaction.
type TransactionResponse struct {
	TransactionID string `json:"transactionID"`
}

// InitializeResponse is returned after the faucet was initialized.
type InitializeResponse struct {
	Administrator string `json:"administrator"`
	TokenMint     string `json:"tokenMint"`
	TokenVault    string `json:"tokenVault"`
	NativeVault   string `json:"nativeVault"`
	TransactionID string `json:"transactionID"`
}

// ClaimResponse describes a successful claim.
type ClaimResponse struct {
	ID            string    `json:"id"`
	Claimant      string    `json:"claimant"`
	TokenAccount  string    `json:"tokenAccount"`
	NativeAmount  uint64    `json:"nativeAmount"`
	TokenAmount   uint64    `json:"tokenAmount"`
	TransactionID string    `json:"transactionID"`
	Time          time.Time `json:"time"`
}

// NewClaimResponse returns the ClaimResponse of a receipt.
func NewClaimResponse(receipt *faucet.Receipt) *ClaimResponse {
	return &ClaimResponse{
		ID:            receipt.ID.String(),
		Claimant:      receipt.Claimant.Base58(),
		TokenAccount:  receipt.TokenAccount.Base58(),
		NativeAmount:  receipt.NativeAmount,
		TokenAmount:   receipt.TokenAmount,
		TransactionID: receipt.TransactionID.String(),
		Time:          receipt.Time,
	}
}

// FaucetStateResponse describes the faucet and its reserves.
type FaucetStateResponse struct {
	Initialized       bool   `json:"initialized"`
	Program           string `json:"program"`
	ConfigAddress     string `json:"configAddress"`
	NativeVault       string `json:"nativeVault"`
	TokenVault        string `json:"tokenVault"`
	Administrator     string `json:"administrator,omitempty"`
	TokenMint         string `json:"tokenMint,omitempty"`
	NativeBalance     uint64 `json:"nativeBalance"`
	TokenBalance      uint64 `json:"tokenBalance"`
	NativeClaimAmount uint64 `json:"nativeClaimAmount"`
	TokenClaimAmount  uint64 `json:"tokenClaimAmount"`
	ClaimsPerMinute   int64  `json:"claimsPerMinute"`
	Claims            uint64 `json:"claims"`
	FailedClaims      uint64 `json:"failedClaims"`
}

// ClaimStatusResponse tells whether an identity already claimed.
type ClaimStatusResponse struct {
	Address    string `json:"address"`
	HasClaimed bool   `json:"hasClaimed"`
}

// AccountResponse contains the native balance of an address and its associated token account for a mint.
type AccountResponse struct {
	Address       string `json:"address"`
	NativeBalance uint64 `json:"nativeBalance"`
	Mint          string `json:"mint,omitempty"`
	TokenAccount  string `json:"tokenAccount,omitempty"`
	TokenBalance  uint64 `json:"tokenBalance"`
}

// AirdropRequest credits native coins to an address on development networks.
type AirdropRequest struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// TokenAccountResponse is returned after a token account was created.
type TokenAccountResponse struct {
	TokenAccount  string `json:"tokenAccount"`
	TransactionID string `json:"transactionID"`
}
