package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

var workerpools *prometheus.GaugeVec

func registerWorkerpoolMetrics() {
	workerpools = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "workerpools_load",
			Help: "Info about workerpools load",
		},
		[]string{
			"name",
		},
	)

	registry.MustRegister(workerpools)

	addCollect(collectWorkerpoolMetrics)
}

func collectWorkerpoolMetrics() {
	workerpools.WithLabelValues("claims").Set(float64(deps.ClaimPool.Running()))
}
