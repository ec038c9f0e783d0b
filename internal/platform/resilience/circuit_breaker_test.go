package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker rejected request: %v", err)
	}
	b.RecordFailure()
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 10 * time.Millisecond, HalfOpenMaxReq: 1})
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}

	current = current.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe rejected: %v", err)
	}
	b.RecordSuccess()

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}
}
