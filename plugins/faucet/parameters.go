package faucet

import (
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
)

const (
	// CfgFaucetProgramID defines the base58 encoded program the faucet executes its transactions as.
	CfgFaucetProgramID = "faucet.programID"
	// CfgFaucetClaimWorkers defines how many claims are processed in parallel.
	CfgFaucetClaimWorkers = "faucet.claimWorkers"
	// CfgFaucetClaimQueueSize defines how many claims may wait for a worker before new ones are rejected.
	CfgFaucetClaimQueueSize = "faucet.claimQueueSize"
	// CfgFaucetClaimTimeout defines how long a claim may take before it is aborted.
	CfgFaucetClaimTimeout = "faucet.claimTimeout"
	// CfgFaucetReplayWindow defines how far the timestamp of a signed request may deviate from the local clock.
	CfgFaucetReplayWindow = "faucet.replayWindow"
)

func init() {
	flag.String(CfgFaucetProgramID, faucet.DefaultProgramID.Base58(), "the base58 encoded program id of the faucet")
	flag.Int(CfgFaucetClaimWorkers, runtime.GOMAXPROCS(0), "the number of claims processed in parallel")
	flag.Int(CfgFaucetClaimQueueSize, 500, "the number of claims that may wait for a worker")
	flag.Duration(CfgFaucetClaimTimeout, 10*time.Second, "the maximum duration of a claim")
	flag.Duration(CfgFaucetReplayWindow, time.Minute, "the maximum deviation of request timestamps from the local clock")
}
