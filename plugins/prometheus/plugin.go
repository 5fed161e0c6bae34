package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/database"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	"github.com/iotaledger/tokenfaucet/packages/shutdown"
	"github.com/iotaledger/tokenfaucet/plugins/config"
	faucetplugin "github.com/iotaledger/tokenfaucet/plugins/faucet"
)

// PluginName is the name of the prometheus plugin.
const PluginName = "Prometheus"

type dependencies struct {
	dig.In

	DB           database.DB
	Faucet       *faucet.Faucet
	ClaimPool    *faucetplugin.ClaimPool
	Stats        *faucetplugin.Stats
	ReplayFilter *replayfilter.ReplayFilter
}

var (
	// Plugin is the plugin instance of the prometheus plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)

	server   *http.Server
	registry = prometheus.NewRegistry()
	collects []func()
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Disabled, configure, run)
}

func configure(_ *node.Plugin) {
	if config.Node().GetBool(CfgPrometheusGoMetrics) {
		registry.MustRegister(prometheus.NewGoCollector())
	}
	if config.Node().GetBool(CfgPrometheusProcessMetrics) {
		registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}

	registerDBMetrics()
	registerFaucetMetrics()
	registerWorkerpoolMetrics()
}

func addCollect(collect func()) {
	collects = append(collects, collect)
}

func run(plugin *node.Plugin) {
	plugin.Info("Starting Prometheus exporter ...")

	if err := daemon.BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		plugin.Info("Starting Prometheus exporter ... done")

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.GET("/metrics", echo.WrapHandler(newHandler()))

		bindAddr := config.Node().GetString(CfgPrometheusBindAddress)
		server = &http.Server{Addr: bindAddr, Handler: e}

		go func() {
			plugin.Infof("You can now access the Prometheus exporter using: http://%s/metrics", bindAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				plugin.Errorf("Stopping Prometheus exporter due to an error: %s", err)
			}
		}()

		<-ctx.Done()
		plugin.Info("Stopping Prometheus exporter ...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			plugin.Error(err.Error())
		}
		plugin.Info("Stopping Prometheus exporter ... done")
	}, shutdown.PriorityPrometheus); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}

// newHandler returns the handler that refreshes all gauges before it serves the registry.
func newHandler() http.Handler {
	var handler http.Handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	if config.Node().GetBool(CfgPrometheusPromhttpMetrics) {
		handler = promhttp.InstrumentMetricHandler(registry, handler)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, collect := range collects {
			collect()
		}
		handler.ServeHTTP(w, r)
	})
}
