package lrs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/playtrack/internal/metrics"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

// DefaultQueueSize is used when a forwarder is created with a non-positive queue size.
const DefaultQueueSize = 256

// ErrForwarderClosed is returned by Enqueue after Close.
var ErrForwarderClosed = errors.New("lrs forwarder is closed")

// Forwarder submits statements in the background, one at a time, in enqueue order.
// Delivery is best effort: a statement is dropped when the queue is full or the submission fails.
type Forwarder struct {
	submitter Submitter
	metrics   *metrics.Metrics
	queue     chan xapi.Statement
	done      chan struct{}

	mu     sync.RWMutex
	closed bool
	// cancel aborts an in-flight submission when Close gives up waiting
	ctx    context.Context
	cancel context.CancelFunc
}

// NewForwarder starts a worker that drains a queue of queueSize statements into submitter.
// m may be nil.
func NewForwarder(submitter Submitter, queueSize int, m *metrics.Metrics) *Forwarder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	f := &Forwarder{
		submitter: submitter,
		metrics:   m,
		queue:     make(chan xapi.Statement, queueSize),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	go f.run()
	return f
}

// Enqueue hands statement to the worker without blocking.
// It returns false when the statement was dropped because the queue is full.
func (f *Forwarder) Enqueue(statement xapi.Statement) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return false, ErrForwarderClosed
	}

	select {
	case f.queue <- statement:
		f.metrics.SetQueueDepth(len(f.queue))
		return true, nil
	default:
		slog.Default().Warn("LRS queue is full, dropping statement",
			"statementId", statement.ID,
			"queueSize", cap(f.queue))
		f.metrics.ObserveForward(metrics.OutcomeDropped)
		return false, nil
	}
}

func (f *Forwarder) run() {
	defer close(f.done)
	for statement := range f.queue {
		f.metrics.SetQueueDepth(len(f.queue))
		if err := f.submitter.Submit(f.ctx, statement); err != nil {
			slog.Default().Error("failed to forward statement to LRS",
				"statementId", statement.ID,
				"error", err)
			f.metrics.ObserveForward(metrics.OutcomeFailed)
			continue
		}
		f.metrics.ObserveForward(metrics.OutcomeSubmitted)
	}
}

// Close stops accepting statements and waits for the queued ones to be submitted.
// When ctx ends first, the in-flight submission is canceled and the remaining statements are discarded.
func (f *Forwarder) Close(ctx context.Context) error {
	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.queue)
	}
	f.mu.Unlock()

	select {
	case <-f.done:
		f.cancel()
		return nil
	case <-ctx.Done():
		f.cancel()
		<-f.done
		return ctx.Err()
	}
}
