package healthz

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/labstack/echo"
	"go.uber.org/atomic"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/shutdown"
)

// PluginName is the name of the web API healthz endpoint plugin.
const PluginName = "WebAPIHealthzEndpoint"

type dependencies struct {
	dig.In

	Server *echo.Echo
	Faucet *faucet.Faucet
}

var (
	// Plugin is the plugin instance of the web API healthz endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)

	healthy = atomic.NewBool(false)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)
}

func configure(_ *node.Plugin) {
	deps.Server.GET("healthz", getHealthz)
}

func run(plugin *node.Plugin) {
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		// set healthy to false as soon as worker exits
		defer healthy.Store(false)

		healthy.Store(true)
		plugin.Info("All plugins started successfully")
		<-ctx.Done()
	}, shutdown.PriorityHealthz); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}

// getHealthz reports 200 once all plugins are running and the faucet state can be read.
func getHealthz(c echo.Context) error {
	if !healthy.Load() {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	if _, err := deps.Faucet.Balances(c.Request().Context()); err != nil && !errors.Is(err, faucet.ErrNotInitialized) {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
