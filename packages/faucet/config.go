package faucet

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// region Config ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Config is the singleton record that is created by Initialize. It is immutable afterwards.
type Config struct {
	// Administrator is the only identity allowed to deposit into the vaults.
	Administrator ledger.Address
	// TokenMint is the mint of the tokens handed out by the faucet.
	TokenMint ledger.Address
	// TokenVault is the token account holding the token reserves.
	TokenVault ledger.Address
	// NativeVault is the account holding the native coin reserves.
	NativeVault ledger.Address

	ConfigBump      uint8
	NativeVaultBump uint8
	TokenVaultBump  uint8
}

// ConfigFromBytes unmarshals a Config from a sequence of bytes.
func ConfigFromBytes(bytes []byte) (config *Config, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if config, err = ConfigFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Config from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// ConfigFromMarshalUtil unmarshals a Config using a MarshalUtil (for easier unmarshaling).
func ConfigFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (config *Config, err error) {
	config = &Config{}
	if config.Administrator, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse admin: %w", err)
	}
	if config.TokenMint, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse token mint: %w", err)
	}
	if config.TokenVault, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse token vault: %w", err)
	}
	if config.NativeVault, err = ledger.AddressFromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse native vault: %w", err)
	}
	if config.ConfigBump, err = marshalUtil.ReadUint8(); err != nil {
		return nil, errors.Errorf("failed to parse config bump (%v): %w", err, ledger.ErrParseBytesFailed)
	}
	if config.NativeVaultBump, err = marshalUtil.ReadUint8(); err != nil {
		return nil, errors.Errorf("failed to parse native vault bump (%v): %w", err, ledger.ErrParseBytesFailed)
	}
	if config.TokenVaultBump, err = marshalUtil.ReadUint8(); err != nil {
		return nil, errors.Errorf("failed to parse token vault bump (%v): %w", err, ledger.ErrParseBytesFailed)
	}

	return config, nil
}

// Bytes returns a marshaled version of the Config.
func (c *Config) Bytes() []byte {
	return marshalutil.New(4*ledger.AddressLength + 3*marshalutil.Uint8Size).
		WriteBytes(c.Administrator.Bytes()).
		WriteBytes(c.TokenMint.Bytes()).
		WriteBytes(c.TokenVault.Bytes()).
		WriteBytes(c.NativeVault.Bytes()).
		WriteUint8(c.ConfigBump).
		WriteUint8(c.NativeVaultBump).
		WriteUint8(c.TokenVaultBump).
		Bytes()
}

// String returns a human readable version of the Config.
func (c *Config) String() string {
	return stringify.Struct("Config",
		stringify.StructField("admin", c.Administrator.Base58()),
		stringify.StructField("tokenMint", c.TokenMint.Base58()),
		stringify.StructField("tokenVault", c.TokenVault.Base58()),
		stringify.StructField("nativeVault", c.NativeVault.Base58()),
		stringify.StructField("configBump", c.ConfigBump),
		stringify.StructField("nativeVaultBump", c.NativeVaultBump),
		stringify.StructField("tokenVaultBump", c.TokenVaultBump),
	)
}

func (c *Config) configAuthority(program ledger.Address) *ledger.AuthorityProof {
	return ledger.NewAuthorityProof(program, c.ConfigBump, seedConfig)
}

func (c *Config) nativeVaultAuthority(program ledger.Address) *ledger.AuthorityProof {
	return ledger.NewAuthorityProof(program, c.NativeVaultBump, seedNativeVault)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Addresses ////////////////////////////////////////////////////////////////////////////////////////////////////

// Addresses contains the derived accounts of a faucet program.
type Addresses struct {
	Program     ledger.Address
	Config      *ledger.AuthorityProof
	NativeVault *ledger.AuthorityProof
	TokenVault  *ledger.AuthorityProof
}

// DeriveAddresses derives the accounts a faucet program uses.
func DeriveAddresses(program ledger.Address) (addresses *Addresses, err error) {
	addresses = &Addresses{Program: program}
	if addresses.Config, err = ledger.DeriveAddress(program, seedConfig); err != nil {
		return nil, errors.Errorf("failed to derive config address: %w", err)
	}
	if addresses.NativeVault, err = ledger.DeriveAddress(program, seedNativeVault); err != nil {
		return nil, errors.Errorf("failed to derive native vault address: %w", err)
	}
	if addresses.TokenVault, err = ledger.DeriveAddress(program, seedTokenVault); err != nil {
		return nil, errors.Errorf("failed to derive token vault address: %w", err)
	}

	return addresses, nil
}

// ConfigAddress returns the address of the Config record.
func (a *Addresses) ConfigAddress() ledger.Address {
	return mustAddress(a.Config)
}

// NativeVaultAddress returns the address of the native coin vault.
func (a *Addresses) NativeVaultAddress() ledger.Address {
	return mustAddress(a.NativeVault)
}

// TokenVaultAddress returns the address of the token vault.
func (a *Addresses) TokenVaultAddress() ledger.Address {
	return mustAddress(a.TokenVault)
}

// ClaimAddress returns the address of the ClaimRecord of identity.
func (a *Addresses) ClaimAddress(identity ledger.Address) (*ledger.AuthorityProof, error) {
	return ledger.DeriveAddress(a.Program, seedClaim, identity.Bytes())
}

func mustAddress(proof *ledger.AuthorityProof) ledger.Address {
	address, err := proof.Address()
	if err != nil {
		panic(err)
	}

	return address
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
