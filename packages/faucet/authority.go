package faucet

import "github.com/iotaledger/tokenfaucet/packages/ledger"

// IsAdministrator returns true if caller is the administrator recorded in the Config.
func IsAdministrator(caller ledger.Address, config *Config) bool {
	return config != nil && config.Administrator == caller
}
