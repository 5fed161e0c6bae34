// Package client implements a very simple wrapper for the web API of a faucet node.
package client

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/iotaledger/hive.go/crypto/ed25519"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
)

var (
	// ErrBadRequest defines the "bad request" error.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized defines the "unauthorized" error.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound defines the "not found" error.
	ErrNotFound = errors.New("not found")
	// ErrConflict defines the "conflict" error, e.g. a second claim of the same identity.
	ErrConflict = errors.New("conflict")
	// ErrUnprocessable defines the error of requests that lack the necessary funds.
	ErrUnprocessable = errors.New("insufficient funds")
	// ErrUnavailable defines the error of a node that is too busy or shutting down.
	ErrUnavailable = errors.New("service unavailable")
	// ErrInternalServerError defines the "internal server error" error.
	ErrInternalServerError = errors.New("internal server error")
	// ErrUnknownError defines the "unknown error" error.
	ErrUnknownError = errors.New("unknown error")
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusServiceUnavailable:  ErrUnavailable,
	http.StatusInternalServerError: ErrInternalServerError,
}

// FaucetAPI is an API wrapper over the web API of a faucet node.
type FaucetAPI struct {
	client *resty.Client
}

// NewFaucetAPI returns a new *FaucetAPI with the given baseURL and an optional httpClient.
func NewFaucetAPI(baseURL string, httpClient ...*http.Client) *FaucetAPI {
	client := resty.New()
	if len(httpClient) > 0 {
		client = resty.NewWithClient(httpClient[0])
	}

	return &FaucetAPI{client: client.SetHostURL(strings.TrimSuffix(baseURL, "/"))}
}

// BaseURL returns the baseURL of the API.
func (api *FaucetAPI) BaseURL() string {
	return api.client.HostURL
}

func (api *FaucetAPI) do(method, route string, reqObj, resObj interface{}) error {
	req := api.client.R().SetError(&jsonmodels.ErrorResponse{})
	if reqObj != nil {
		req.SetBody(reqObj)
	}
	if resObj != nil {
		req.SetResult(resObj)
	}

	res, err := req.Execute(method, "/"+route)
	if err != nil {
		return errors.Wrapf(err, "failed to %s %s", method, route)
	}

	return interpretResponse(res)
}

// signed signs request with keyPair and returns its JSON form.
func signed(request *faucet.Request, keyPair ed25519.KeyPair) *jsonmodels.SignedRequest {
	return jsonmodels.NewSignedRequest(request.Sign(keyPair))
}

func interpretResponse(res *resty.Response) error {
	if !res.IsError() {
		return nil
	}

	message := http.StatusText(res.StatusCode())
	if errorResponse, ok := res.Error().(*jsonmodels.ErrorResponse); ok && errorResponse.Error != "" {
		message = errorResponse.Error
	}

	sentinel, exists := statusErrors[res.StatusCode()]
	if !exists {
		sentinel = ErrUnknownError
	}

	return errors.Errorf("%s (%d): %w", message, res.StatusCode(), sentinel)
}
