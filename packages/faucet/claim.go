package faucet

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// region ClaimRecord //////////////////////////////////////////////////////////////////////////////////////////////////

// ClaimRecord tracks whether an identity already claimed. HasClaimed never goes back to false.
type ClaimRecord struct {
	HasClaimed bool
}

// ClaimRecordFromBytes unmarshals a ClaimRecord from a sequence of bytes.
func ClaimRecordFromBytes(bytes []byte) (record *ClaimRecord, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	record = &ClaimRecord{}
	if record.HasClaimed, err = marshalUtil.ReadBool(); err != nil {
		return nil, 0, errors.Errorf("failed to parse ClaimRecord (%v): %w", err, ledger.ErrParseBytesFailed)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// Bytes returns a marshaled version of the ClaimRecord.
func (c *ClaimRecord) Bytes() []byte {
	return marshalutil.New(marshalutil.BoolSize).WriteBool(c.HasClaimed).Bytes()
}

// String returns a human readable version of the ClaimRecord.
func (c *ClaimRecord) String() string {
	return stringify.Struct("ClaimRecord",
		stringify.StructField("hasClaimed", c.HasClaimed),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ClaimLedger //////////////////////////////////////////////////////////////////////////////////////////////////

// ClaimLedger gives access to the ClaimRecords of a faucet program inside a ledger transaction.
type ClaimLedger struct {
	tx        *ledger.Tx
	addresses *Addresses
}

// NewClaimLedger returns the ClaimLedger of the faucet program with the given addresses.
func NewClaimLedger(tx *ledger.Tx, addresses *Addresses) *ClaimLedger {
	return &ClaimLedger{
		tx:        tx,
		addresses: addresses,
	}
}

// Lookup returns the ClaimRecord of identity. An identity that never claimed gets a zero ClaimRecord and exists is
// false.
func (c *ClaimLedger) Lookup(identity ledger.Address) (record *ClaimRecord, exists bool, err error) {
	_, address, err := c.address(identity)
	if err != nil {
		return nil, false, err
	}

	stored, err := c.tx.Record(address)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return &ClaimRecord{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if record, _, err = ClaimRecordFromBytes(stored.Data); err != nil {
		return nil, false, errors.Errorf("failed to load claim record of %s: %w", identity, err)
	}

	return record, true, nil
}

// Get returns the ClaimRecord of identity and creates it if it does not exist yet.
func (c *ClaimLedger) Get(identity ledger.Address) (record *ClaimRecord, err error) {
	record, exists, err := c.Lookup(identity)
	if err != nil || exists {
		return record, err
	}

	proof, address, err := c.address(identity)
	if err != nil {
		return nil, err
	}
	if err = c.tx.CreateRecord(address, record.Bytes(), proof); err != nil {
		return nil, errors.Errorf("failed to create claim record of %s: %w", identity, err)
	}

	return record, nil
}

// MarkClaimed flags the existing ClaimRecord of identity as claimed.
func (c *ClaimLedger) MarkClaimed(identity ledger.Address) error {
	_, address, err := c.address(identity)
	if err != nil {
		return err
	}

	if err = c.tx.UpdateRecord(address, (&ClaimRecord{HasClaimed: true}).Bytes()); err != nil {
		return errors.Errorf("failed to mark %s as claimed: %w", identity, err)
	}

	return nil
}

func (c *ClaimLedger) address(identity ledger.Address) (proof *ledger.AuthorityProof, address ledger.Address, err error) {
	if proof, err = c.addresses.ClaimAddress(identity); err != nil {
		return nil, ledger.EmptyAddress, errors.Errorf("failed to derive claim record address of %s: %w", identity, err)
	}
	if address, err = proof.Address(); err != nil {
		return nil, ledger.EmptyAddress, err
	}

	return proof, address, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
