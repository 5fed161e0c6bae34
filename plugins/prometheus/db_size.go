package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

var dbSize prometheus.Gauge

func registerDBMetrics() {
	dbSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "db",
			Name:      "size_bytes",
			Help:      "DB size in bytes.",
		},
	)

	registry.MustRegister(dbSize)

	addCollect(collectDBSize)
}

func collectDBSize() {
	dbSize.Set(float64(deps.DB.Size()))
}
