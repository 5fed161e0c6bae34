package faucet

import (
	"time"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/atomic"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
)

// Stats counts the activity of a Faucet.
type Stats struct {
	claimRate *ratecounter.RateCounter
	claims    *atomic.Uint64
	failures  *atomic.Uint64
	deposits  *atomic.Uint64
}

// NewStats creates Stats that follow the events of f.
func NewStats(f *faucet.Faucet) *Stats {
	stats := &Stats{
		claimRate: ratecounter.NewRateCounter(time.Minute),
		claims:    atomic.NewUint64(0),
		failures:  atomic.NewUint64(0),
		deposits:  atomic.NewUint64(0),
	}

	f.Events.Claimed.Attach(event.NewClosure(func(*faucet.ClaimedEvent) {
		stats.claimRate.Incr(1)
		stats.claims.Inc()
	}))
	f.Events.ClaimFailed.Attach(event.NewClosure(func(*faucet.ClaimFailedEvent) {
		stats.failures.Inc()
	}))
	f.Events.Deposited.Attach(event.NewClosure(func(*faucet.DepositedEvent) {
		stats.deposits.Inc()
	}))

	return stats
}

// ClaimsPerMinute returns the number of successful claims within the last minute.
func (s *Stats) ClaimsPerMinute() int64 {
	return s.claimRate.Rate()
}

// Claims returns the number of successful claims since the start of the node.
func (s *Stats) Claims() uint64 {
	return s.claims.Load()
}

// FailedClaims returns the number of rejected claims since the start of the node.
func (s *Stats) FailedClaims() uint64 {
	return s.failures.Load()
}

// Deposits returns the number of deposits since the start of the node.
func (s *Stats) Deposits() uint64 {
	return s.deposits.Load()
}
