package webapi

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/shutdown"
	"github.com/iotaledger/tokenfaucet/plugins/config"
)

// PluginName is the name of the web API plugin.
const PluginName = "WebAPI"

type dependencies struct {
	dig.In

	Server *echo.Echo
}

var (
	// Plugin is the plugin instance of the web API plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Attach(event.NewClosure(func(ev *node.InitEvent) {
		ev.Plugin.Provide(ev.Container, newServer)
	}))
}

func newServer() *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger.SetLevel(log.OFF)
	server.HTTPErrorHandler = errorHandler
	server.Use(middleware.Recover())

	return server
}

func configure(plugin *node.Plugin) {
	if config.Node().GetBool(CfgDebug) {
		deps.Server.Logger.SetLevel(log.DEBUG)
		deps.Server.Use(middleware.Logger())
	}
}

func run(plugin *node.Plugin) {
	plugin.Infof("Starting %s ...", PluginName)
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		worker(ctx, plugin)
	}, shutdown.PriorityWebAPI); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}

func worker(ctx context.Context, plugin *node.Plugin) {
	defer plugin.Infof("Stopping %s ... done", PluginName)

	bindAddr := config.Node().GetString(CfgBindAddress)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		plugin.Infof("%s started, bind-address=%s", PluginName, bindAddr)
		if err := deps.Server.Start(bindAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			plugin.Errorf("Error serving: %s", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
		return
	}

	plugin.Infof("Stopping %s ...", PluginName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Node().GetDuration(CfgShutdownTimeout))
	defer cancel()

	if err := deps.Server.Shutdown(shutdownCtx); err != nil {
		plugin.Errorf("Error stopping: %s", err)
	}
}
