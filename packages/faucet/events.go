package faucet

import (
	"time"

	"github.com/iotaledger/hive.go/generics/event"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// Events contains the events triggered by the Faucet. They fire after the ledger transaction was committed.
type Events struct {
	Initialized *event.Event[*InitializedEvent]
	Deposited   *event.Event[*DepositedEvent]
	Claimed     *event.Event[*ClaimedEvent]
	ClaimFailed *event.Event[*ClaimFailedEvent]
}

func newEvents() *Events {
	return &Events{
		Initialized: event.New[*InitializedEvent](),
		Deposited:   event.New[*DepositedEvent](),
		Claimed:     event.New[*ClaimedEvent](),
		ClaimFailed: event.New[*ClaimFailedEvent](),
	}
}

// InitializedEvent is triggered when the faucet was initialized.
type InitializedEvent struct {
	Config        *Config
	TransactionID ledger.TransactionID
}

// DepositedEvent is triggered when the admin refilled a vault.
type DepositedEvent struct {
	Vault         VaultKind
	Amount        uint64
	TransactionID ledger.TransactionID
}

// ClaimedEvent is triggered for every successful claim.
type ClaimedEvent struct {
	Receipt *Receipt
}

// ClaimFailedEvent is triggered when a claim was rejected.
type ClaimFailedEvent struct {
	Claimant ledger.Address
	Error    error
	Time     time.Time
}
