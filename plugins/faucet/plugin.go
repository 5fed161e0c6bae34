package faucet

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/kvstore"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	"github.com/iotaledger/tokenfaucet/packages/shutdown"
	"github.com/iotaledger/tokenfaucet/plugins/config"
)

// PluginName is the name of the faucet plugin.
const PluginName = "Faucet"

type dependencies struct {
	dig.In

	Faucet       *faucet.Faucet
	ClaimPool    *ClaimPool
	ReplayFilter *replayfilter.ReplayFilter
}

var (
	// Plugin is the plugin instance of the faucet plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Attach(event.NewClosure(func(ev *node.InitEvent) {
		ev.Plugin.Provide(ev.Container,
			func(store kvstore.KVStore) *ledger.Ledger {
				return ledger.New(ledger.WithStore(store), ledger.WithLogger(ev.Plugin.Named("Ledger")))
			},
			func(l *ledger.Ledger) (*faucet.Faucet, error) {
				program, err := ledger.AddressFromBase58(config.Node().GetString(CfgFaucetProgramID))
				if err != nil {
					return nil, errors.Errorf("invalid %s: %w", CfgFaucetProgramID, err)
				}

				return faucet.New(l, faucet.WithProgram(program), faucet.WithLogger(ev.Plugin.Logger))
			},
			func(f *faucet.Faucet) (*ClaimPool, error) {
				return NewClaimPool(f,
					config.Node().GetInt(CfgFaucetClaimWorkers),
					config.Node().GetInt(CfgFaucetClaimQueueSize),
					config.Node().GetDuration(CfgFaucetClaimTimeout),
				)
			},
			NewStats,
			func() (*replayfilter.ReplayFilter, error) {
				return replayfilter.New(config.Node().GetDuration(CfgFaucetReplayWindow), ev.Plugin.Named("ReplayFilter"))
			},
		)
	}))
}

func configure(plugin *node.Plugin) {
	addresses := deps.Faucet.Addresses()
	plugin.Infow("faucet accounts",
		"program", addresses.Program,
		"config", addresses.ConfigAddress(),
		"nativeVault", addresses.NativeVaultAddress(),
		"tokenVault", addresses.TokenVaultAddress(),
	)

	deps.Faucet.Events.Initialized.Attach(event.NewClosure(func(ev *faucet.InitializedEvent) {
		plugin.Infof("Faucet initialized by %s for mint %s", ev.Config.Administrator, ev.Config.TokenMint)
	}))
	deps.Faucet.Events.Deposited.Attach(event.NewClosure(func(ev *faucet.DepositedEvent) {
		plugin.Infof("Deposited %d into %s (tx %s)", ev.Amount, ev.Vault, ev.TransactionID)
	}))
	deps.Faucet.Events.Claimed.Attach(event.NewClosure(func(ev *faucet.ClaimedEvent) {
		plugin.Infof("Funded %s with %d native and %d tokens (tx %s)", ev.Receipt.Claimant, ev.Receipt.NativeAmount, ev.Receipt.TokenAmount, ev.Receipt.TransactionID)
	}))
	deps.Faucet.Events.ClaimFailed.Attach(event.NewClosure(func(ev *faucet.ClaimFailedEvent) {
		plugin.Debugf("Claim of %s failed: %s", ev.Claimant, ev.Error)
	}))
}

func run(plugin *node.Plugin) {
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		<-ctx.Done()
		plugin.Info("Stopping claim workers ...")
		deps.ClaimPool.Release()
		deps.ReplayFilter.Close()
		plugin.Info("Stopping claim workers ... done")
	}, shutdown.PriorityFaucet); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}
