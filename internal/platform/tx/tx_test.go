package tx_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"moodlog/internal/platform/tx"
)

func TestSerialNeverOverlaps(t *testing.T) {
	t.Parallel()
	manager := tx.NewSerial()
	var active, peak atomic.Int32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Within(context.Background(), func(context.Context) error {
				now := active.Add(1)
				for {
					old := peak.Load()
					if now <= old || peak.CompareAndSwap(old, now) {
						break
					}
				}
				counter++
				active.Add(-1)
				return nil
			})
			if err != nil {
				t.Errorf("within: %v", err)
			}
		}()
	}
	wg.Wait()
	if peak.Load() != 1 {
		t.Fatalf("expected at most one unit of work at a time, saw %d", peak.Load())
	}
	if counter != 32 {
		t.Fatalf("counter = %d, want 32", counter)
	}
}

func TestSerialHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := tx.NewSerial().Within(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected cancellation before work, got err=%v called=%t", err, called)
	}
}

func TestNoopManagerPassesErrorsThrough(t *testing.T) {
	t.Parallel()
	want := errors.New("boom")
	if err := (tx.NoopManager{}).Within(context.Background(), func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
}
