// Package plugins lists the plugins a faucet node is made of.
package plugins

import (
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins/database"
	"github.com/iotaledger/tokenfaucet/plugins/faucet"
	"github.com/iotaledger/tokenfaucet/plugins/gracefulshutdown"
	"github.com/iotaledger/tokenfaucet/plugins/prometheus"
)

// Core contains the core plugins of a faucet node.
var Core = []*node.Plugin{
	gracefulshutdown.Plugin,
	database.Plugin,
	faucet.Plugin,
	prometheus.Plugin,
}
