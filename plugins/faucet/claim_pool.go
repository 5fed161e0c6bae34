package faucet

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

var (
	// ErrPoolOverloaded is returned if all workers are busy and the queue of waiting claims is full.
	ErrPoolOverloaded = errors.New("too many pending claims")
	// ErrPoolClosed is returned if a claim is submitted after the node started shutting down.
	ErrPoolClosed = errors.New("claim processing has been stopped")
)

// ClaimPool processes claims on a bounded number of workers.
type ClaimPool struct {
	pool    *ants.Pool
	faucet  *faucet.Faucet
	timeout time.Duration
}

type claimResult struct {
	receipt *faucet.Receipt
	err     error
}

// NewClaimPool creates a ClaimPool with the given number of workers. At most queueSize claims wait for a worker.
func NewClaimPool(f *faucet.Faucet, workers, queueSize int, timeout time.Duration) (*ClaimPool, error) {
	pool, err := ants.NewPool(workers, ants.WithMaxBlockingTasks(queueSize))
	if err != nil {
		return nil, errors.Errorf("failed to create claim worker pool: %w", err)
	}

	return &ClaimPool{
		pool:    pool,
		faucet:  f,
		timeout: timeout,
	}, nil
}

// Claim executes the claim of claimant on a worker and waits for its result. If ctx or the claim timeout expires
// first, the claim may still commit afterwards: callers have to check the claim record before they retry.
func (c *ClaimPool) Claim(ctx context.Context, claimant ledger.Signer) (*faucet.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := make(chan claimResult, 1)
	if err := c.pool.Submit(func() {
		receipt, err := c.faucet.Claim(ctx, claimant)
		result <- claimResult{receipt: receipt, err: err}
	}); err != nil {
		switch {
		case errors.Is(err, ants.ErrPoolOverload):
			return nil, ErrPoolOverloaded
		case errors.Is(err, ants.ErrPoolClosed):
			return nil, ErrPoolClosed
		}
		return nil, errors.Errorf("failed to submit claim: %w", err)
	}

	return awaitClaim(ctx, result)
}

// awaitClaim waits for the result of a submitted claim. A claim that committed while ctx expired still reports its
// receipt, so a timeout error does not prove that the claim did not happen.
func awaitClaim(ctx context.Context, result <-chan claimResult) (*faucet.Receipt, error) {
	select {
	case r := <-result:
		return r.receipt, r.err
	case <-ctx.Done():
		select {
		case r := <-result:
			return r.receipt, r.err
		default:
			return nil, errors.WithStack(ctx.Err())
		}
	}
}

// Running returns the number of claims that are currently processed.
func (c *ClaimPool) Running() int {
	return c.pool.Running()
}

// Release stops the workers. Claims submitted afterwards fail with ErrPoolClosed.
func (c *ClaimPool) Release() {
	c.pool.Release()
}
