package payment

import (
	"context"
	"sync"
	"time"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// PollUpdate is one observation from a verification loop.
type PollUpdate struct {
	MD5Hash string
	Status  domain.PaymentStatus
	Attempt int
}

// Verifier runs at most one polling loop per md5 hash against the
// gateway. Starting a loop for an md5 that already has one replaces it;
// after Stop returns no further updates are delivered for that loop,
// even if a gateway request was in flight when it was called.
type Verifier struct {
	checker     StatusChecker
	interval    time.Duration
	maxAttempts int

	mu     sync.Mutex
	active map[string]*pollRun
}

type pollRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewVerifier(checker StatusChecker, interval time.Duration, maxAttempts int) *Verifier {
	return &Verifier{
		checker:     checker,
		interval:    interval,
		maxAttempts: maxAttempts,
		active:      map[string]*pollRun{},
	}
}

// Start begins polling for md5Hash and returns a stop function. The
// first gateway check happens one interval after Start, not
// immediately. The loop ends on PAID, on a gateway error, when the
// attempt budget runs out (delivering timeout), or when stopped.
func (v *Verifier) Start(md5Hash string, onUpdate func(PollUpdate)) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	run := &pollRun{cancel: cancel, done: make(chan struct{})}

	v.mu.Lock()
	if prev, ok := v.active[md5Hash]; ok {
		prev.cancel()
	}
	v.active[md5Hash] = run
	v.mu.Unlock()

	go v.poll(ctx, run, md5Hash, onUpdate)

	return func() {
		cancel()
		<-run.done
	}
}

// Stop cancels the active loop for md5Hash, if any.
func (v *Verifier) Stop(md5Hash string) {
	v.mu.Lock()
	run, ok := v.active[md5Hash]
	v.mu.Unlock()
	if ok {
		run.cancel()
		<-run.done
	}
}

func (v *Verifier) poll(ctx context.Context, run *pollRun, md5Hash string, onUpdate func(PollUpdate)) {
	defer close(run.done)
	defer v.release(md5Hash, run)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= v.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		status, err := v.checker.CheckTransaction(ctx, md5Hash)

		// A response that arrives after cancellation is stale; drop it
		// rather than surface an update the caller no longer wants.
		if ctx.Err() != nil {
			return
		}

		switch {
		case err != nil:
			onUpdate(PollUpdate{MD5Hash: md5Hash, Status: domain.PaymentError, Attempt: attempt})
			return
		case status == domain.PaymentPaid:
			onUpdate(PollUpdate{MD5Hash: md5Hash, Status: domain.PaymentPaid, Attempt: attempt})
			return
		default:
			onUpdate(PollUpdate{MD5Hash: md5Hash, Status: domain.PaymentVerifying, Attempt: attempt})
		}
	}

	if ctx.Err() == nil {
		onUpdate(PollUpdate{MD5Hash: md5Hash, Status: domain.PaymentTimeout, Attempt: v.maxAttempts})
	}
}

func (v *Verifier) release(md5Hash string, run *pollRun) {
	v.mu.Lock()
	if v.active[md5Hash] == run {
		delete(v.active, md5Hash)
	}
	v.mu.Unlock()
}
