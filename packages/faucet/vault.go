package faucet

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

// VaultKind identifies one of the two reserves of the faucet.
type VaultKind uint8

const (
	// NativeVault holds the native coin reserves.
	NativeVault VaultKind = iota
	// TokenVault holds the token reserves.
	TokenVault
)

// String returns the name of the VaultKind.
func (v VaultKind) String() string {
	switch v {
	case NativeVault:
		return "NativeVault"
	case TokenVault:
		return "TokenVault"
	default:
		return "VaultKind(unknown)"
	}
}

// VaultRegistry moves funds in and out of the vaults inside a ledger transaction.
type VaultRegistry struct {
	tx        *ledger.Tx
	addresses *Addresses
}

// NewVaultRegistry returns the VaultRegistry of the faucet program with the given addresses.
func NewVaultRegistry(tx *ledger.Tx, addresses *Addresses) *VaultRegistry {
	return &VaultRegistry{
		tx:        tx,
		addresses: addresses,
	}
}

// Address returns the account of the vault.
func (v *VaultRegistry) Address(kind VaultKind) ledger.Address {
	if kind == TokenVault {
		return v.addresses.TokenVaultAddress()
	}

	return v.addresses.NativeVaultAddress()
}

// Balance returns the funds held by the vault.
func (v *VaultRegistry) Balance(kind VaultKind) (uint64, error) {
	switch kind {
	case NativeVault:
		return v.tx.NativeBalance(v.Address(kind))
	case TokenVault:
		account, err := v.tx.TokenAccount(v.Address(kind))
		if err != nil {
			if errors.Is(err, ledger.ErrAccountNotFound) {
				return 0, errors.Errorf("token vault does not exist: %w", ErrNotInitialized)
			}
			return 0, err
		}
		return account.Amount, nil
	default:
		return 0, errors.Errorf("unknown vault %s", kind)
	}
}

// Deposit moves amount from source into the vault. For the TokenVault source is a token account.
func (v *VaultRegistry) Deposit(kind VaultKind, source ledger.Address, amount uint64) error {
	switch kind {
	case NativeVault:
		return v.tx.Transfer(source, v.Address(kind), amount, nil)
	case TokenVault:
		return v.tx.TokenTransfer(source, v.Address(kind), amount, nil)
	default:
		return errors.Errorf("unknown vault %s", kind)
	}
}

// Transfer moves amount from the vault to destination. The proof authorizes the program to debit the vault.
func (v *VaultRegistry) Transfer(kind VaultKind, destination ledger.Address, amount uint64, proof *ledger.AuthorityProof) error {
	switch kind {
	case NativeVault:
		return v.tx.Transfer(v.Address(kind), destination, amount, proof)
	case TokenVault:
		return v.tx.TokenTransfer(v.Address(kind), destination, amount, proof)
	default:
		return errors.Errorf("unknown vault %s", kind)
	}
}
