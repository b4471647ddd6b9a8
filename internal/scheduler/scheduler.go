package scheduler

import (
	"context"
	"sync"
	"time"
)

// Tick identifies a periodic signal.
type Tick uint8

const (
	TickRefresh Tick = 1 << iota
	TickRenewal
)

func (t Tick) String() string {
	switch t {
	case TickRefresh:
		return "refresh"
	case TickRenewal:
		return "renewal"
	default:
		return "tick"
	}
}

// Pending is a set of ticks waiting to be handled.
type Pending uint8

// Has reports whether t is in the set.
func (p Pending) Has(t Tick) bool {
	return p&Pending(t) != 0
}

// With returns p with t added.
func (p Pending) With(t Tick) Pending {
	return p | Pending(t)
}

// Without returns p with t removed.
func (p Pending) Without(t Tick) Pending {
	return p &^ Pending(t)
}

// Empty reports whether nothing is pending.
func (p Pending) Empty() bool {
	return p == 0
}

// Scheduler runs the refresh and renewal tickers. The ticker goroutines only
// set pending bits and nudge the wake channel; the consumer decides when to
// Drain. Ticks of one kind that fire before a Drain coalesce into one.
type Scheduler struct {
	refreshEvery time.Duration
	renewalEvery time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending Pending

	wake chan struct{}
}

// New creates a stopped scheduler. Call Start to launch the tickers.
func New(refreshEvery, renewalEvery time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		refreshEvery: refreshEvery,
		renewalEvery: renewalEvery,
		ctx:          ctx,
		cancel:       cancel,
		wake:         make(chan struct{}, 1),
	}
}

// Start launches exactly two goroutines, one per ticker.
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.run(TickRefresh, s.refreshEvery)
	go s.run(TickRenewal, s.renewalEvery)
}

func (s *Scheduler) run(t Tick, every time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.signal(t)
		}
	}
}

func (s *Scheduler) signal(t Tick) {
	s.mu.Lock()
	s.pending |= Pending(t)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Wake fires after a tick is signalled. Several ticks may share one wake-up.
func (s *Scheduler) Wake() <-chan struct{} {
	return s.wake
}

// Done is closed once Stop has been called.
func (s *Scheduler) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Drain returns and clears the pending ticks.
func (s *Scheduler) Drain() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = 0
	return p
}

// Stop cancels both tickers. Use Wait for a clean drain.
func (s *Scheduler) Stop() {
	s.cancel()
}

// Wait blocks until both ticker goroutines have exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
