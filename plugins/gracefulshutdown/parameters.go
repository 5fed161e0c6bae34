package gracefulshutdown

import (
	"time"

	flag "github.com/spf13/pflag"
)

// CfgWaitToKillTime defines the maximum amount of time to wait for background processes to terminate.
const CfgWaitToKillTime = "gracefulShutdown.waitToKillTime"

func init() {
	flag.Duration(CfgWaitToKillTime, 120*time.Second, "the maximum amount of time to wait for background processes to terminate")
}
