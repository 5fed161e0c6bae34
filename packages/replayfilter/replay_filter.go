package replayfilter

import (
	"fmt"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/atomic"
)

var (
	// ErrStaleRequest is returned if the timestamp of a request lies outside of the accepted window.
	ErrStaleRequest = errors.New("request timestamp is outside of the accepted window")
	// ErrReplayedRequest is returned if a signature was already seen.
	ErrReplayedRequest = errors.New("request was already processed")
)

// Rejection describes a request the filter turned away.
type Rejection struct {
	Caller string
	Reason error
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Caller, r.Reason)
}

// ReplayFilter rejects signed requests that are too old, too far in the future or that were seen before. Signatures
// are remembered for twice the window, which covers every timestamp that can still pass the window check.
type ReplayFilter struct {
	// RejectedEvent is triggered for every rejected request.
	RejectedEvent *event.Event[*Rejection]

	window   time.Duration
	seen     *ttlcache.Cache
	mutex    sync.Mutex
	rejected *atomic.Uint64
	log      *logger.Logger
}

// New creates a ReplayFilter that accepts timestamps which deviate at most window from the local clock.
func New(window time.Duration, log *logger.Logger) (*ReplayFilter, error) {
	seen := ttlcache.NewCache()
	seen.SkipTTLExtensionOnHit(true)
	if err := seen.SetTTL(2 * window); err != nil {
		return nil, errors.WithStack(err)
	}

	return &ReplayFilter{
		RejectedEvent: event.New[*Rejection](),
		window:        window,
		seen:          seen,
		rejected:      atomic.NewUint64(0),
		log:           log,
	}, nil
}

// Check admits the request of caller with the given signature and timestamp exactly once.
// The signature is consumed before the request is processed, so callers re-sign to retry.
func (r *ReplayFilter) Check(caller string, signature []byte, timestamp time.Time) error {
	if err := r.check(signature, timestamp); err != nil {
		r.rejected.Inc()
		r.log.Debugw("request rejected", "caller", caller, "err", err)
		r.RejectedEvent.Trigger(&Rejection{Caller: caller, Reason: err})

		return err
	}

	return nil
}

// Rejected returns the number of requests rejected so far.
func (r *ReplayFilter) Rejected() uint64 {
	return r.rejected.Load()
}

// Close stops the expiration of remembered signatures.
func (r *ReplayFilter) Close() {
	if err := r.seen.Close(); err != nil {
		r.log.Errorw("Failed to close replay cache", "err", err)
	}
}

func (r *ReplayFilter) check(signature []byte, timestamp time.Time) error {
	if age := time.Since(timestamp); age > r.window || age < -r.window {
		return errors.Errorf("request is %s old, window is %s: %w", age, r.window, ErrStaleRequest)
	}

	key := string(signature)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, err := r.seen.Get(key); err == nil {
		return ErrReplayedRequest
	} else if !errors.Is(err, ttlcache.ErrNotFound) {
		return errors.WithStack(err)
	}

	return errors.WithStack(r.seen.Set(key, timestamp))
}
