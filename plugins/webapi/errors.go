package webapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
	faucetplugin "github.com/iotaledger/tokenfaucet/plugins/faucet"
)

// ErrInvalidParameter is returned if a request can not be parsed.
var ErrInvalidParameter = errors.New("invalid parameter")

var statusCodes = []struct {
	err    error
	status int
}{
	{ErrInvalidParameter, http.StatusBadRequest},
	{faucet.ErrInvalidRequest, http.StatusBadRequest},
	{faucet.ErrInvalidAmount, http.StatusBadRequest},
	{faucet.ErrInvalidTokenAccount, http.StatusBadRequest},
	{ledger.ErrInvalidSignature, http.StatusUnauthorized},
	{ledger.ErrMissingSignature, http.StatusUnauthorized},
	{replayfilter.ErrStaleRequest, http.StatusUnauthorized},
	{replayfilter.ErrReplayedRequest, http.StatusUnauthorized},
	{faucet.ErrUnauthorized, http.StatusUnauthorized},
	{faucet.ErrNotInitialized, http.StatusNotFound},
	{faucet.ErrMintNotFound, http.StatusNotFound},
	{ledger.ErrAccountNotFound, http.StatusNotFound},
	{faucet.ErrAlreadyClaimed, http.StatusConflict},
	{faucet.ErrAlreadyInitialized, http.StatusConflict},
	{ledger.ErrAccountExists, http.StatusConflict},
	{faucet.ErrInsufficientSolBalance, http.StatusUnprocessableEntity},
	{faucet.ErrInsufficientTokenBalance, http.StatusUnprocessableEntity},
	{faucet.ErrInsufficientCallerBalance, http.StatusUnprocessableEntity},
	{ledger.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{ledger.ErrMintMismatch, http.StatusUnprocessableEntity},
	{faucetplugin.ErrPoolOverloaded, http.StatusServiceUnavailable},
	{faucetplugin.ErrPoolClosed, http.StatusServiceUnavailable},
}

// StatusCode returns the HTTP status code that corresponds to err.
func StatusCode(err error) int {
	for _, statusCode := range statusCodes {
		if errors.Is(err, statusCode.err) {
			return statusCode.status
		}
	}

	return http.StatusInternalServerError
}

// ErrorJSON writes err with its status code as an ErrorResponse.
func ErrorJSON(c echo.Context, err error) error {
	return c.JSON(StatusCode(err), jsonmodels.NewErrorResponse(err))
}

func errorHandler(err error, c echo.Context) {
	var httpError *echo.HTTPError
	if !errors.As(err, &httpError) {
		_ = ErrorJSON(c, err)
		return
	}

	message := http.StatusText(httpError.Code)
	if text, ok := httpError.Message.(string); ok {
		message = text
	}
	_ = c.JSON(httpError.Code, jsonmodels.ErrorResponse{Error: message})
}
