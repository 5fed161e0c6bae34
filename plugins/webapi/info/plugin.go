package info

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins/cli"
)

// PluginName is the name of the web API info endpoint plugin.
const PluginName = "WebAPIInfoEndpoint"

type dependencies struct {
	dig.In

	Server *echo.Echo
	Faucet *faucet.Faucet
}

var (
	// Plugin is the plugin instance of the web API info endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure)
}

func configure(plugin *node.Plugin) {
	startTime := time.Now()
	deps.Server.GET("info", func(c echo.Context) error {
		return c.JSON(http.StatusOK, newInfoResponse(plugin.Node, deps.Faucet, startTime))
	})
}

func newInfoResponse(n *node.Node, f *faucet.Faucet, startTime time.Time) jsonmodels.InfoResponse {
	var enabledPlugins []string
	var disabledPlugins []string
	for _, plugin := range n.Plugins() {
		if n.IsSkipped(plugin) {
			disabledPlugins = append(disabledPlugins, plugin.Name)
		} else {
			enabledPlugins = append(enabledPlugins, plugin.Name)
		}
	}

	sort.Strings(enabledPlugins)
	sort.Strings(disabledPlugins)

	return jsonmodels.InfoResponse{
		Version:         cli.AppVersion,
		Program:         f.Addresses().Program.Base58(),
		StartTime:       startTime,
		EnabledPlugins:  enabledPlugins,
		DisabledPlugins: disabledPlugins,
	}
}
