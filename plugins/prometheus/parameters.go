package prometheus

import (
	flag "github.com/spf13/pflag"
)

const (
	// CfgPrometheusBindAddress defines the bind address of the Prometheus exporter.
	CfgPrometheusBindAddress = "prometheus.bindAddress"
	// CfgPrometheusGoMetrics enables the collection of Go runtime metrics.
	CfgPrometheusGoMetrics = "prometheus.goMetrics"
	// CfgPrometheusProcessMetrics enables the collection of process metrics.
	CfgPrometheusProcessMetrics = "prometheus.processMetrics"
	// CfgPrometheusPromhttpMetrics enables the collection of metrics about the exporter itself.
	CfgPrometheusPromhttpMetrics = "prometheus.promhttpMetrics"
)

func init() {
	flag.String(CfgPrometheusBindAddress, "127.0.0.1:9311", "the bind address on which the Prometheus exporter listens on")
	flag.Bool(CfgPrometheusGoMetrics, false, "include go metrics")
	flag.Bool(CfgPrometheusProcessMetrics, false, "include process metrics")
	flag.Bool(CfgPrometheusPromhttpMetrics, false, "include promhttp metrics")
}
