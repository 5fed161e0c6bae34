package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

var (
	// SystemProgram is the program on whose behalf native coin and token movements of users are executed.
	SystemProgram = MustAddressFromBase58("11111111111111111111111111111111")

	// AssociatedTokenProgram is the program that derives the canonical token account of an owner for a mint.
	AssociatedTokenProgram = MustAddressFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// AssociatedTokenAddress returns the Address of the canonical token account of owner for mint.
func AssociatedTokenAddress(owner, mint Address) Address {
	proof := MustDeriveAddress(AssociatedTokenProgram, owner.Bytes(), mint.Bytes())
	address, err := proof.Address()
	if err != nil {
		panic(err)
	}

	return address
}

// region TokenAccount /////////////////////////////////////////////////////////////////////////////////////////////////

// TokenAccount holds the balance of one Mint for one owner.
type TokenAccount struct {
	Mint   Address
	Owner  Address
	Amount uint64
}

// TokenAccountFromBytes unmarshals a TokenAccount from a sequence of bytes.
func TokenAccountFromBytes(bytes []byte) (account *TokenAccount, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	account = &TokenAccount{}
	if account.Mint, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, errors.Errorf("failed to parse mint of TokenAccount: %w", err)
	}
	if account.Owner, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, errors.Errorf("failed to parse owner of TokenAccount: %w", err)
	}
	if account.Amount, err = marshalUtil.ReadUint64(); err != nil {
		return nil, 0, errors.Errorf("failed to parse amount of TokenAccount (%v): %w", err, ErrParseBytesFailed)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// Bytes returns a marshaled version of the TokenAccount.
func (t *TokenAccount) Bytes() []byte {
	return marshalutil.New(2*AddressLength + marshalutil.Uint64Size).
		WriteBytes(t.Mint.Bytes()).
		WriteBytes(t.Owner.Bytes()).
		WriteUint64(t.Amount).
		Bytes()
}

// String returns a human readable version of the TokenAccount.
func (t *TokenAccount) String() string {
	return stringify.Struct("TokenAccount",
		stringify.StructField("mint", t.Mint.Base58()),
		stringify.StructField("owner", t.Owner.Base58()),
		stringify.StructField("amount", t.Amount),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Mint /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Mint describes a fungible token.
type Mint struct {
	Authority Address
	Decimals  uint8
	Supply    uint64
}

// MintFromBytes unmarshals a Mint from a sequence of bytes.
func MintFromBytes(bytes []byte) (mint *Mint, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	mint = &Mint{}
	if mint.Authority, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, errors.Errorf("failed to parse authority of Mint: %w", err)
	}
	if mint.Decimals, err = marshalUtil.ReadUint8(); err != nil {
		return nil, 0, errors.Errorf("failed to parse decimals of Mint (%v): %w", err, ErrParseBytesFailed)
	}
	if mint.Supply, err = marshalUtil.ReadUint64(); err != nil {
		return nil, 0, errors.Errorf("failed to parse supply of Mint (%v): %w", err, ErrParseBytesFailed)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// Bytes returns a marshaled version of the Mint.
func (m *Mint) Bytes() []byte {
	return marshalutil.New(AddressLength + marshalutil.Uint8Size + marshalutil.Uint64Size).
		WriteBytes(m.Authority.Bytes()).
		WriteUint8(m.Decimals).
		WriteUint64(m.Supply).
		Bytes()
}

// String returns a human readable version of the Mint.
func (m *Mint) String() string {
	return stringify.Struct("Mint",
		stringify.StructField("authority", m.Authority.Base58()),
		stringify.StructField("decimals", m.Decimals),
		stringify.StructField("supply", m.Supply),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Record ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Record is a blob of program state stored at a derived Address. Only the owning program can modify it.
type Record struct {
	Owner Address
	Data  []byte
}

// RecordFromBytes unmarshals a Record from a sequence of bytes.
func RecordFromBytes(bytes []byte) (record *Record, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	record = &Record{}
	if record.Owner, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, errors.Errorf("failed to parse owner of Record: %w", err)
	}
	dataLength, err := marshalUtil.ReadUint32()
	if err != nil {
		return nil, 0, errors.Errorf("failed to parse data length of Record (%v): %w", err, ErrParseBytesFailed)
	}
	if record.Data, err = marshalUtil.ReadBytes(int(dataLength)); err != nil {
		return nil, 0, errors.Errorf("failed to parse data of Record (%v): %w", err, ErrParseBytesFailed)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// Bytes returns a marshaled version of the Record.
func (r *Record) Bytes() []byte {
	return marshalutil.New(AddressLength + marshalutil.Uint32Size + len(r.Data)).
		WriteBytes(r.Owner.Bytes()).
		WriteUint32(uint32(len(r.Data))).
		WriteBytes(r.Data).
		Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
