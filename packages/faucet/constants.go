package faucet

import "github.com/iotaledger/tokenfaucet/packages/ledger"

const (
	// NativeClaimAmount is the amount of native coin (in base units) every claimant receives.
	NativeClaimAmount uint64 = 100_000_000

	// TokenClaimAmount is the amount of token base units every claimant receives.
	TokenClaimAmount uint64 = 1_000_000_000
)

// DefaultProgramID is the program the faucet executes its ledger transactions as, unless configured otherwise.
var DefaultProgramID = ledger.MustAddressFromBase58("8BiHU1nfA6eReeipY7Z9eMSxg8JFthY3PaDJcj8Zmq4u")

var (
	seedConfig      = []byte("faucet_state")
	seedNativeVault = []byte("sol_vault")
	seedTokenVault  = []byte("usdc_vault")
	seedClaim       = []byte("user_claim")
)
