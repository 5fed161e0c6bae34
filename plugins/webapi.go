package plugins

import (
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins/webapi"
	"github.com/iotaledger/tokenfaucet/plugins/webapi/faucet"
	"github.com/iotaledger/tokenfaucet/plugins/webapi/healthz"
	"github.com/iotaledger/tokenfaucet/plugins/webapi/info"
	"github.com/iotaledger/tokenfaucet/plugins/webapi/ledger"
)

// WebAPI contains the webapi endpoint plugins of a faucet node.
var WebAPI = []*node.Plugin{
	webapi.Plugin,
	info.Plugin,
	faucet.Plugin,
	ledger.Plugin,
	healthz.Plugin,
}
