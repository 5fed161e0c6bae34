package info

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins/cli"
)

func TestNewInfoResponse(t *testing.T) {
	f, err := faucet.New(ledger.New())
	require.NoError(t, err)

	n := node.New(dig.New(), zap.NewNop().Sugar(), nil, []string{"Faucet"},
		node.NewPlugin("WebAPI", nil, node.Enabled),
		node.NewPlugin("Faucet", nil, node.Enabled),
		node.NewPlugin("Prometheus", nil, node.Disabled),
	)

	startTime := time.Now()
	response := newInfoResponse(n, f, startTime)
	assert.Equal(t, cli.AppVersion, response.Version)
	assert.Equal(t, faucet.DefaultProgramID.Base58(), response.Program)
	assert.Equal(t, startTime, response.StartTime)
	assert.Equal(t, []string{"WebAPI"}, response.EnabledPlugins)
	assert.Equal(t, []string{"Faucet", "Prometheus"}, response.DisabledPlugins)
}
