package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iotaledger/tokenfaucet/packages/database"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	faucetplugin "github.com/iotaledger/tokenfaucet/plugins/faucet"
)

func TestMetricsHandler(t *testing.T) {
	db := database.NewMemDB()
	f, err := faucet.New(ledger.New(ledger.WithStore(db.NewStore())))
	require.NoError(t, err)
	claimPool, err := faucetplugin.NewClaimPool(f, 1, 1, time.Second)
	require.NoError(t, err)
	defer claimPool.Release()
	replayFilter, err := replayfilter.New(time.Minute, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer replayFilter.Close()

	deps.DB = db
	deps.Faucet = f
	deps.ClaimPool = claimPool
	deps.Stats = faucetplugin.NewStats(f)
	deps.ReplayFilter = replayFilter

	registerDBMetrics()
	registerFaucetMetrics()
	registerWorkerpoolMetrics()

	rec := httptest.NewRecorder()
	newHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "faucet_claims_total 0")
	assert.Contains(t, body, "faucet_claims_per_minute 0")
	assert.Contains(t, body, "db_size_bytes 0")
	assert.Contains(t, body, `workerpools_load{name="claims"} 0`)
	assert.NotContains(t, body, "faucet_vault_balance{")
}
