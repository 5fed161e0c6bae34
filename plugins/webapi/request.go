package webapi

import (
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo"

	"github.com/iotaledger/tokenfaucet/packages/app/jsonmodels"
	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
	"github.com/iotaledger/tokenfaucet/packages/replayfilter"
)

// ParseSignedRequest reads the SignedRequest in the body of c, verifies its signature for the given operation and
// admits it through the replay filter.
func ParseSignedRequest(c echo.Context, filter *replayfilter.ReplayFilter, operation faucet.Operation) (*faucet.Request, ledger.Signer, error) {
	var body jsonmodels.SignedRequest
	if err := c.Bind(&body); err != nil {
		return nil, ledger.Signer{}, errors.Errorf("failed to parse request (%v): %w", err, ErrInvalidParameter)
	}

	request, err := body.Request(operation)
	if err != nil {
		return nil, ledger.Signer{}, errors.Errorf("%v: %w", err, ErrInvalidParameter)
	}

	signer, err := request.Verify()
	if err != nil {
		return nil, ledger.Signer{}, err
	}

	if err = filter.Check(signer.String(), request.Signature[:], request.Timestamp); err != nil {
		return nil, ledger.Signer{}, err
	}

	return request, signer, nil
}

// AddressParameter parses the base58 encoded address in the path parameter name.
func AddressParameter(c echo.Context, name string) (ledger.Address, error) {
	address, err := ledger.AddressFromBase58(c.Param(name))
	if err != nil {
		return ledger.EmptyAddress, errors.Errorf("invalid %s (%v): %w", name, err, ErrInvalidParameter)
	}

	return address, nil
}
