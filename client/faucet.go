package client

import (
	"net/http"

	"github.com/iotaledger/hive.go/crypto/ed25519"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

const (
	routeFaucetInitialize    = "faucet/initialize"
	routeFaucetDepositNative = "faucet/deposit/native"
	routeFaucetDepositToken  = "faucet/deposit/token"
	routeFaucetClaim         = "faucet/claim"
	routeFaucetState         = "faucet/state"
	routeFaucetClaims        = "faucet/claims/"
)

// Initialize initializes the faucet with the owner of keyPair as administrator and mint as the token it hands out.
func (api *FaucetAPI) Initialize(keyPair ed25519.KeyPair, mint ledger.Address) (*jsonmodels.InitializeResponse, error) {
	request := faucet.NewRequest(faucet.OperationInitialize, keyPair.PublicKey)
	request.Mint = mint

	res := &jsonmodels.InitializeResponse{}
	if err := api.do(http.MethodPost, routeFaucetInitialize, signed(request, keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}

// DepositNative moves amount native coins of the administrator into the native vault.
func (api *FaucetAPI) DepositNative(keyPair ed25519.KeyPair, amount uint64) (*jsonmodels.TransactionResponse, error) {
	return api.deposit(routeFaucetDepositNative, faucet.OperationDepositNative, keyPair, amount)
}

// DepositToken moves amount tokens of the administrator into the token vault.
func (api *FaucetAPI) DepositToken(keyPair ed25519.KeyPair, amount uint64) (*jsonmodels.TransactionResponse, error) {
	return api.deposit(routeFaucetDepositToken, faucet.OperationDepositToken, keyPair, amount)
}

func (api *FaucetAPI) deposit(route string, operation faucet.Operation, keyPair ed25519.KeyPair, amount uint64) (*jsonmodels.TransactionResponse, error) {
	request := faucet.NewRequest(operation, keyPair.PublicKey)
	request.Amount = amount

	res := &jsonmodels.TransactionResponse{}
	if err := api.do(http.MethodPost, route, signed(request, keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}

// Claim claims the faucet amounts for the owner of keyPair.
func (api *FaucetAPI) Claim(keyPair ed25519.KeyPair) (*jsonmodels.ClaimResponse, error) {
	res := &jsonmodels.ClaimResponse{}
	if err := api.do(http.MethodPost, routeFaucetClaim, signed(faucet.NewRequest(faucet.OperationClaim, keyPair.PublicKey), keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}

// State returns the configuration and the reserves of the faucet.
func (api *FaucetAPI) State() (*jsonmodels.FaucetStateResponse, error) {
	res := &jsonmodels.FaucetStateResponse{}
	if err := api.do(http.MethodGet, routeFaucetState, nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// ClaimStatus tells whether address already claimed.
func (api *FaucetAPI) ClaimStatus(address ledger.Address) (*jsonmodels.ClaimStatusResponse, error) {
	res := &jsonmodels.ClaimStatusResponse{}
	if err := api.do(http.MethodGet, routeFaucetClaims+address.Base58(), nil, res); err != nil {
		return nil, err
	}

	return res, nil
}
