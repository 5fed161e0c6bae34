package faucet

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	faucetplugin "github.com/iotaledger/tokenfaucet/plugins/faucet"
	"github.com/iotaledger/tokenfaucet/plugins/webapi"
)

// PluginName is the name of the web API faucet endpoint plugin.
const PluginName = "WebAPIFaucetEndpoint"

type dependencies struct {
	dig.In

	Server       *echo.Echo
	Faucet       *faucet.Faucet
	ClaimPool    *faucetplugin.ClaimPool
	Stats        *faucetplugin.Stats
	ReplayFilter *replayfilter.ReplayFilter
}

var (
	// Plugin is the plugin instance of the web API faucet endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure)
}

func configure(plugin *node.Plugin) {
	(&handler{
		faucet:       deps.Faucet,
		claimPool:    deps.ClaimPool,
		stats:        deps.Stats,
		replayFilter: deps.ReplayFilter,
		log:          plugin,
	}).register(deps.Server)
}

type logger interface {
	Debugw(msg string, keysAndValues ...interface{})
}

type handler struct {
	faucet       *faucet.Faucet
	claimPool    *faucetplugin.ClaimPool
	stats        *faucetplugin.Stats
	replayFilter *replayfilter.ReplayFilter
	log          logger
}

func (h *handler) register(server *echo.Echo) {
	server.POST("faucet/initialize", h.initialize)
	server.POST("faucet/deposit/native", h.depositNative)
	server.POST("faucet/deposit/token", h.depositToken)
	server.POST("faucet/claim", h.claim)
	server.GET("faucet/state", h.state)
	server.GET("faucet/claims/:address", h.claimStatus)
}

// initialize initializes the faucet with the caller as administrator and the given mint.
func (h *handler) initialize(c echo.Context) error {
	request, admin, err := webapi.ParseSignedRequest(c, h.replayFilter, faucet.OperationInitialize)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}
	if request.Mint == ledger.EmptyAddress {
		return webapi.ErrorJSON(c, errors.Errorf("mint is missing: %w", webapi.ErrInvalidParameter))
	}

	config, txID, err := h.faucet.Initialize(c.Request().Context(), admin, request.Mint)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.InitializeResponse{
		Administrator: config.Administrator.Base58(),
		TokenMint:     config.TokenMint.Base58(),
		TokenVault:    config.TokenVault.Base58(),
		NativeVault:   config.NativeVault.Base58(),
		TransactionID: txID.String(),
	})
}

func (h *handler) depositNative(c echo.Context) error {
	return h.deposit(c, faucet.OperationDepositNative, h.faucet.DepositNative)
}

func (h *handler) depositToken(c echo.Context) error {
	return h.deposit(c, faucet.OperationDepositToken, h.faucet.DepositToken)
}

func (h *handler) deposit(c echo.Context, operation faucet.Operation, deposit func(ctx context.Context, caller ledger.Signer, amount uint64) (ledger.TransactionID, error)) error {
	request, caller, err := webapi.ParseSignedRequest(c, h.replayFilter, operation)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	txID, err := deposit(c.Request().Context(), caller, request.Amount)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.TransactionResponse{TransactionID: txID.String()})
}

// claim hands out the faucet amounts to the caller. The signature of a request is consumed even if the claim fails,
// so a retry has to be signed again. A timeout does not mean that the claim did not commit.
func (h *handler) claim(c echo.Context) error {
	_, claimant, err := webapi.ParseSignedRequest(c, h.replayFilter, faucet.OperationClaim)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	h.log.Debugw("claim received", "claimant", claimant)

	receipt, err := h.claimPool.Claim(c.Request().Context(), claimant)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.NewClaimResponse(receipt))
}

// state returns the configuration, the derived accounts and the reserves of the faucet.
func (h *handler) state(c echo.Context) error {
	addresses := h.faucet.Addresses()
	response := jsonmodels.FaucetStateResponse{
		Program:           addresses.Program.Base58(),
		ConfigAddress:     addresses.ConfigAddress().Base58(),
		NativeVault:       addresses.NativeVaultAddress().Base58(),
		TokenVault:        addresses.TokenVaultAddress().Base58(),
		NativeClaimAmount: faucet.NativeClaimAmount,
		TokenClaimAmount:  faucet.TokenClaimAmount,
		ClaimsPerMinute:   h.stats.ClaimsPerMinute(),
		Claims:            h.stats.Claims(),
		FailedClaims:      h.stats.FailedClaims(),
	}

	config, err := h.faucet.Config(c.Request().Context())
	if errors.Is(err, faucet.ErrNotInitialized) {
		return c.JSON(http.StatusOK, response)
	}
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	balances, err := h.faucet.Balances(c.Request().Context())
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	response.Initialized = true
	response.Administrator = config.Administrator.Base58()
	response.TokenMint = config.TokenMint.Base58()
	response.NativeBalance = balances.Native
	response.TokenBalance = balances.Token

	return c.JSON(http.StatusOK, response)
}

// claimStatus tells whether the given address already claimed.
func (h *handler) claimStatus(c echo.Context) error {
	address, err := webapi.AddressParameter(c, "address")
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	record, err := h.faucet.ClaimRecord(c.Request().Context(), address)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.ClaimStatusResponse{Address: address.Base58(), HasClaimed: record.HasClaimed})
}
