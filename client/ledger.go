package client

import (
	"net/http"

	"github.com/iotaledger/hive.go/crypto/ed25519"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

const (
	routeLedgerAccounts      = "ledger/accounts/"
	routeLedgerAirdrop       = "ledger/airdrop"
	routeLedgerMints         = "ledger/mints"
	routeLedgerMintTo        = "/mint-to"
	routeLedgerTokenAccounts = "ledger/token-accounts"
)

// Account returns the native balance of address. If mint is not empty, the balance of the associated token account
// for mint is included.
func (api *FaucetAPI) Account(address, mint ledger.Address) (*jsonmodels.AccountResponse, error) {
	route := routeLedgerAccounts + address.Base58()
	if mint != ledger.EmptyAddress {
		route += "?mint=" + mint.Base58()
	}

	res := &jsonmodels.AccountResponse{}
	if err := api.do(http.MethodGet, route, nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// Airdrop credits amount native coins to address. Only nodes of development networks offer it.
func (api *FaucetAPI) Airdrop(address ledger.Address, amount uint64) (*jsonmodels.TransactionResponse, error) {
	res := &jsonmodels.TransactionResponse{}
	if err := api.do(http.MethodPost, routeLedgerAirdrop, &jsonmodels.AirdropRequest{Address: address.Base58(), Amount: amount}, res); err != nil {
		return nil, err
	}

	return res, nil
}

// CreateMint creates a mint at the given address with the owner of keyPair as authority.
func (api *FaucetAPI) CreateMint(keyPair ed25519.KeyPair, mint ledger.Address, decimals uint8) (*jsonmodels.TransactionResponse, error) {
	request := faucet.NewRequest(faucet.OperationCreateMint, keyPair.PublicKey)
	request.Mint = mint
	request.Amount = uint64(decimals)

	res := &jsonmodels.TransactionResponse{}
	if err := api.do(http.MethodPost, routeLedgerMints, signed(request, keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}

// MintTo mints amount tokens into the associated token account of recipient. keyPair has to belong to the authority
// of the mint.
func (api *FaucetAPI) MintTo(keyPair ed25519.KeyPair, mint, recipient ledger.Address, amount uint64) (*jsonmodels.TokenAccountResponse, error) {
	request := faucet.NewRequest(faucet.OperationMintTo, keyPair.PublicKey)
	request.Mint = mint
	request.Recipient = recipient
	request.Amount = amount

	res := &jsonmodels.TokenAccountResponse{}
	if err := api.do(http.MethodPost, routeLedgerMints+"/"+mint.Base58()+routeLedgerMintTo, signed(request, keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}

// CreateTokenAccount creates the associated token account of the owner of keyPair for mint.
func (api *FaucetAPI) CreateTokenAccount(keyPair ed25519.KeyPair, mint ledger.Address) (*jsonmodels.TokenAccountResponse, error) {
	request := faucet.NewRequest(faucet.OperationCreateTokenAccount, keyPair.PublicKey)
	request.Mint = mint

	res := &jsonmodels.TokenAccountResponse{}
	if err := api.do(http.MethodPost, routeLedgerTokenAccounts, signed(request, keyPair), res); err != nil {
		return nil, err
	}

	return res, nil
}
