package ledger

import (
	"math"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	"github.com/iotaledger/tokenfaucet/plugins/config"
	"github.com/iotaledger/tokenfaucet/plugins/webapi"
)

// region Plugin ///////////////////////////////////////////////////////////////////////////////////////////////////////

// PluginName is the name of the web API ledger endpoint plugin.
const PluginName = "WebAPILedgerEndpoint"

type dependencies struct {
	dig.In

	Server       *echo.Echo
	Ledger       *ledger.Ledger
	ReplayFilter *replayfilter.ReplayFilter
}

var (
	// Plugin holds the singleton instance of the plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure)
}

func configure(plugin *node.Plugin) {
	devnet := config.Node().GetBool(CfgDevnet)
	if devnet {
		plugin.Warn("Devnet endpoints are enabled, anybody can create coins and tokens")
	}

	(&handler{ledger: deps.Ledger, replayFilter: deps.ReplayFilter}).register(deps.Server, devnet)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Handlers /////////////////////////////////////////////////////////////////////////////////////////////////////

type handler struct {
	ledger       *ledger.Ledger
	replayFilter *replayfilter.ReplayFilter
}

func (h *handler) register(server *echo.Echo, devnet bool) {
	server.GET("ledger/accounts/:address", h.getAccount)
	server.POST("ledger/token-accounts", h.createTokenAccount)

	if !devnet {
		return
	}

	server.POST("ledger/airdrop", h.airdrop)
	server.POST("ledger/mints", h.createMint)
	server.POST("ledger/mints/:mint/mint-to", h.mintTo)
}

// getAccount returns the native balance of an address. If the mint query parameter is given, the associated token
// account of the address for that mint is included.
func (h *handler) getAccount(c echo.Context) error {
	address, err := webapi.AddressParameter(c, "address")
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	response := jsonmodels.AccountResponse{Address: address.Base58()}
	var mint ledger.Address
	if mintParameter := c.QueryParam("mint"); mintParameter != "" {
		if mint, err = ledger.AddressFromBase58(mintParameter); err != nil {
			return webapi.ErrorJSON(c, errors.Errorf("invalid mint (%v): %w", err, webapi.ErrInvalidParameter))
		}
	}

	if err = h.ledger.View(c.Request().Context(), func(tx *ledger.Tx) error {
		if response.NativeBalance, err = tx.NativeBalance(address); err != nil {
			return err
		}
		if mint == ledger.EmptyAddress {
			return nil
		}

		tokenAccount := ledger.AssociatedTokenAddress(address, mint)
		account, err := tx.TokenAccount(tokenAccount)
		if errors.Is(err, ledger.ErrAccountNotFound) {
			response.Mint = mint.Base58()
			return nil
		}
		if err != nil {
			return err
		}

		response.Mint = mint.Base58()
		response.TokenAccount = tokenAccount.Base58()
		response.TokenBalance = account.Amount

		return nil
	}); err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// createTokenAccount creates the associated token account of the caller for the requested mint.
func (h *handler) createTokenAccount(c echo.Context) error {
	request, caller, err := webapi.ParseSignedRequest(c, h.replayFilter, faucet.OperationCreateTokenAccount)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}
	if request.Mint == ledger.EmptyAddress {
		return webapi.ErrorJSON(c, errors.Errorf("mint is missing: %w", webapi.ErrInvalidParameter))
	}

	var tokenAccount ledger.Address
	txID, err := h.ledger.Update(c.Request().Context(), ledger.AssociatedTokenProgram, func(tx *ledger.Tx) error {
		if _, err := tx.Mint(request.Mint); err != nil {
			if errors.Is(err, ledger.ErrAccountNotFound) {
				return errors.Errorf("%s: %w", request.Mint, faucet.ErrMintNotFound)
			}
			return err
		}

		tokenAccount, err = tx.CreateAssociatedTokenAccount(caller.Address(), request.Mint)
		return err
	}, caller)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.TokenAccountResponse{TokenAccount: tokenAccount.Base58(), TransactionID: txID.String()})
}

// airdrop credits native coins to an address.
func (h *handler) airdrop(c echo.Context) error {
	var request jsonmodels.AirdropRequest
	if err := c.Bind(&request); err != nil {
		return webapi.ErrorJSON(c, errors.Errorf("failed to parse request (%v): %w", err, webapi.ErrInvalidParameter))
	}
	address, err := ledger.AddressFromBase58(request.Address)
	if err != nil {
		return webapi.ErrorJSON(c, errors.Errorf("invalid address (%v): %w", err, webapi.ErrInvalidParameter))
	}
	if request.Amount == 0 {
		return webapi.ErrorJSON(c, errors.Errorf("airdrop of nothing: %w", faucet.ErrInvalidAmount))
	}

	txID, err := h.ledger.Update(c.Request().Context(), ledger.SystemProgram, func(tx *ledger.Tx) error {
		return tx.Airdrop(address, request.Amount)
	})
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.TransactionResponse{TransactionID: txID.String()})
}

// createMint creates the mint at the Mint of the request with the caller as authority. The Amount of the request
// carries the decimals of the mint.
func (h *handler) createMint(c echo.Context) error {
	request, caller, err := webapi.ParseSignedRequest(c, h.replayFilter, faucet.OperationCreateMint)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}
	if request.Mint == ledger.EmptyAddress {
		return webapi.ErrorJSON(c, errors.Errorf("mint is missing: %w", webapi.ErrInvalidParameter))
	}
	if request.Amount > math.MaxUint8 {
		return webapi.ErrorJSON(c, errors.Errorf("%d decimals: %w", request.Amount, webapi.ErrInvalidParameter))
	}

	txID, err := h.ledger.Update(c.Request().Context(), ledger.SystemProgram, func(tx *ledger.Tx) error {
		return tx.CreateMint(request.Mint, caller.Address(), uint8(request.Amount))
	}, caller)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.TransactionResponse{TransactionID: txID.String()})
}

// mintTo mints tokens into the associated token account of the recipient, which is created if necessary. The caller
// has to be the authority of the mint and sign the mint of the path.
func (h *handler) mintTo(c echo.Context) error {
	mint, err := webapi.AddressParameter(c, "mint")
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	request, caller, err := webapi.ParseSignedRequest(c, h.replayFilter, faucet.OperationMintTo)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}
	if request.Mint != mint {
		return webapi.ErrorJSON(c, errors.Errorf("request is signed for mint %s: %w", request.Mint, webapi.ErrInvalidParameter))
	}
	if request.Recipient == ledger.EmptyAddress {
		return webapi.ErrorJSON(c, errors.Errorf("recipient is missing: %w", webapi.ErrInvalidParameter))
	}
	if request.Amount == 0 {
		return webapi.ErrorJSON(c, errors.Errorf("minting nothing: %w", faucet.ErrInvalidAmount))
	}

	var tokenAccount ledger.Address
	txID, err := h.ledger.Update(c.Request().Context(), ledger.SystemProgram, func(tx *ledger.Tx) error {
		if tokenAccount, err = tx.CreateAssociatedTokenAccount(request.Recipient, request.Mint); err != nil {
			return err
		}

		return tx.MintTo(request.Mint, tokenAccount, request.Amount)
	}, caller)
	if err != nil {
		return webapi.ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonmodels.TokenAccountResponse{TokenAccount: tokenAccount.Base58(), TransactionID: txID.String()})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
