package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards one scrape upstream. The poll loop hits the same
// host every interval, so once the site starts failing or rate-limiting,
// tripping fast and probing with a limited number of requests keeps the
// workers from burning retry cycles against a dead page.
type CircuitBreaker struct {
	mu sync.Mutex

	name        string
	failLimit   int
	openTimeout time.Duration
	probeLimit  int

	state          CircuitState
	failStreak     int
	trippedAt      time.Time
	probesInFlight int
	probeSuccesses int
	now            func() time.Time
}

func NewCircuitBreaker(name string, failLimit int, openTimeout time.Duration, probeLimit int) *CircuitBreaker {
	if name == "" {
		name = "upstream"
	}
	if failLimit < 1 {
		failLimit = 1
	}
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		name:        name,
		failLimit:   failLimit,
		openTimeout: openTimeout,
		probeLimit:  probeLimit,
		state:       CircuitStateClosed,
		now:         time.Now,
	}
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// Allow reports whether a request may go out. While open it rejects until
// the open timeout elapses, then admits up to probeLimit probes.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.trippedAt) < b.openTimeout {
			return b.rejection()
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesInFlight >= b.probeLimit {
			return b.rejection()
		}
		b.probesInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failStreak = 0
	case CircuitStateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.probeSuccesses++
		if b.probeSuccesses >= b.probeLimit && b.probesInFlight == 0 {
			b.enterClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failStreak++
		if b.failStreak >= b.failLimit {
			b.enterOpen()
		}
	case CircuitStateHalfOpen:
		// A failed probe re-arms the full open window.
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.enterOpen()
	case CircuitStateOpen:
		b.trippedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.trippedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) rejection() error {
	return fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
}

func (b *CircuitBreaker) enterClosed() {
	b.state = CircuitStateClosed
	b.failStreak = 0
	b.probesInFlight = 0
	b.probeSuccesses = 0
	b.trippedAt = time.Time{}
}

func (b *CircuitBreaker) enterOpen() {
	b.state = CircuitStateOpen
	b.trippedAt = b.now()
	b.probesInFlight = 0
	b.probeSuccesses = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.probesInFlight = 0
	b.probeSuccesses = 0
}
