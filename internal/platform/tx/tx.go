package tx

import (
	"context"
	"sync"
)

// Manager wraps one read-modify-write of the whole record collection.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly. Fine for callers that never overlap, such as
// a single CLI command.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Serial runs units of work one at a time within the process. The TUI issues
// writes from concurrent tea.Cmd goroutines and each must see the previous
// one's snapshot.
type Serial struct {
	mu sync.Mutex
}

func NewSerial() *Serial {
	return &Serial{}
}

func (s *Serial) Within(ctx context.Context, fn func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
