package prometheus

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
)

var (
	claimsPerMinute prometheus.Gauge
	claims          prometheus.CounterFunc
	failedClaims    prometheus.CounterFunc
	deposits        prometheus.CounterFunc
	rejected        prometheus.CounterFunc
	vaultBalances   *prometheus.GaugeVec
)

func registerFaucetMetrics() {
	claimsPerMinute = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "faucet",
		Name:      "claims_per_minute",
		Help:      "Successful claims within the last minute.",
	})
	claims = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "faucet",
		Name:      "claims_total",
		Help:      "Successful claims since the start of the node.",
	}, func() float64 { return float64(deps.Stats.Claims()) })
	failedClaims = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "faucet",
		Name:      "failed_claims_total",
		Help:      "Rejected claims since the start of the node.",
	}, func() float64 { return float64(deps.Stats.FailedClaims()) })
	deposits = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "faucet",
		Name:      "deposits_total",
		Help:      "Deposits into the vaults since the start of the node.",
	}, func() float64 { return float64(deps.Stats.Deposits()) })
	rejected = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "webapi",
		Name:      "rejected_requests_total",
		Help:      "Signed requests that were stale or replayed.",
	}, func() float64 { return float64(deps.ReplayFilter.Rejected()) })
	vaultBalances = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "faucet",
			Name:      "vault_balance",
			Help:      "Funds held by the vaults of the faucet.",
		},
		[]string{
			"vault",
		},
	)

	registry.MustRegister(claimsPerMinute, claims, failedClaims, deposits, rejected, vaultBalances)

	addCollect(collectFaucetMetrics)
}

func collectFaucetMetrics() {
	claimsPerMinute.Set(float64(deps.Stats.ClaimsPerMinute()))

	balances, err := deps.Faucet.Balances(context.Background())
	if err != nil {
		if !errors.Is(err, faucet.ErrNotInitialized) {
			Plugin.Warnf("failed to read vault balances: %s", err)
		}
		return
	}

	vaultBalances.WithLabelValues(faucet.NativeVault.String()).Set(float64(balances.Native))
	vaultBalances.WithLabelValues(faucet.TokenVault.String()).Set(float64(balances.Token))
}
