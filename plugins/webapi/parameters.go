package webapi

import (
	"time"

	flag "github.com/spf13/pflag"
)

const (
	// CfgBindAddress defines the config flag of the web API binding address.
	CfgBindAddress = "webapi.bindAddress"
	// CfgShutdownTimeout defines how long in-flight requests may take after a shutdown was requested.
	CfgShutdownTimeout = "webapi.shutdownTimeout"
	// CfgDebug enables the request logging of the web server.
	CfgDebug = "webapi.debug"
)

func init() {
	flag.String(CfgBindAddress, "127.0.0.1:8080", "the bind address for the web API")
	flag.Duration(CfgShutdownTimeout, 5*time.Second, "the time in-flight requests may take after a shutdown was requested")
	flag.Bool(CfgDebug, false, "log every request of the web API")
}
