package jsonmodels

import (
	"time"
)

// InfoResponse holds the response of the GET request.
type InfoResponse struct {
	// version of the faucet node
	Version string `json:"version,omitempty"`
	// base58 encoded program the faucet executes its transactions as
	Program string `json:"program,omitempty"`
	// time the node was started
	StartTime time.Time `json:"startTime"`
	// list of enabled plugins
	EnabledPlugins []string `json:"enabledPlugins,omitempty"`
	// list if disabled plugins
	DisabledPlugins []string `json:"disabledPlugins,omitempty"`
}
