package gracefulshutdown

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iotaledger/hive.go/daemon"

	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins/config"
)

// PluginName is the name of the graceful shutdown plugin.
const PluginName = "Graceful Shutdown"

// Plugin is the plugin instance of the graceful shutdown plugin.
var Plugin = node.NewPlugin(PluginName, nil, node.Enabled, configure)

func configure(plugin *node.Plugin) {
	waitToKillTime := config.Node().GetDuration(CfgWaitToKillTime)
	gracefulStop := make(chan os.Signal, 1)

	signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-gracefulStop

		plugin.Warnf("Received shutdown request - waiting (max %s) to finish processing ...", waitToKillTime)

		go func() {
			start := time.Now()
			for x := range time.Tick(time.Second) {
				elapsed := x.Sub(start)
				if elapsed > waitToKillTime {
					plugin.Error("Background processes did not terminate in time! Forcing shutdown ...")
					os.Exit(1)
				}

				processList := ""
				if runningBackgroundWorkers := daemon.GetRunningBackgroundWorkers(); len(runningBackgroundWorkers) >= 1 {
					processList = "(" + strings.Join(runningBackgroundWorkers, ", ") + ") "
				}
				plugin.Warnf("Received shutdown request - waiting (max %s) to finish processing %s...", (waitToKillTime - elapsed).Round(time.Second), processList)
			}
		}()

		plugin.Node.Shutdown()
	}()
}
