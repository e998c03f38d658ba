package bridge

import (
	"context"
	"sync"
)

// Future is a channel-backed Promise for Go callers.
// The first Resolve or Reject wins; later calls are ignored.
type Future struct {
	once      sync.Once
	done      chan struct{}
	value     any
	rejection *Rejection
}

// NewFuture creates an unsettled Future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve implements Promise
func (f *Future) Resolve(value any) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

// Reject implements Promise
func (f *Future) Reject(code, message string) {
	f.once.Do(func() {
		f.rejection = &Rejection{Code: code, Message: message}
		close(f.done)
	})
}

// Done is closed once the Future is settled
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future settles or ctx ends. A rejection is
// returned as a *Rejection error.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		if f.rejection != nil {
			return nil, f.rejection
		}
		return f.value, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Payload is the JSON form of a settled call
type Payload struct {
	Result any        `json:"result,omitempty"`
	Error  *Rejection `json:"error,omitempty"`
}

// Settled returns the payload of a settled Future; ok is false while pending
func (f *Future) Settled() (p Payload, ok bool) {
	select {
	case <-f.done:
		if f.rejection != nil {
			return Payload{Error: f.rejection}, true
		}
		return Payload{Result: f.value}, true
	default:
		return Payload{}, false
	}
}
