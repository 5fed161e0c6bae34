package ledger

import (
	flag "github.com/spf13/pflag"
)

// CfgDevnet enables the endpoints that create coins and tokens out of thin air.
const CfgDevnet = "webapi.ledger.devnet"

func init() {
	flag.Bool(CfgDevnet, false, "expose the airdrop and mint endpoints of development networks")
}
