package daemon

import (
	"context"
	"log/slog"
)

// Loop runs every state mutation on one goroutine. Producers on other
// goroutines (socket readers, D-Bus signal pumps, OS signals) Post closures.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	logger *slog.Logger
}

// NewLoop creates a Loop with the given queue capacity.
func NewLoop(capacity int, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), capacity),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post schedules fn on the loop. It reports false once the loop has stopped.
// Post must not be called from the loop goroutine with a full queue.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted closures in order until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("dispatch loop stopped", "pending", len(l.queue))
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain runs closures already queued without blocking. It is meant for the
// shutdown path after Run has returned.
func (l *Loop) Drain() {
	for {
		select {
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}
