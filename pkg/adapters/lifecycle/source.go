// Package lifecycle adapts notepad event streams to the aretw0/lifecycle
// runtime. A host that already supervises its workers with lifecycle can plug
// a store subscription or a Watchable adapter in as one more event source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// Source streams document events as lifecycle events. Wrap a channel with
// NewSource and hand the result to a lifecycle runtime; Start may be called
// once.
type Source struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps an event channel, typically the one returned by
// Store.Subscribe or Watchable.Watch. The bridge keeps the input channel's
// buffering so a slow host does not stall the store's non-blocking sends.
func NewSource(events <-chan core.Event) *Source {
	return &Source{
		in:  events,
		out: make(chan lifecycle.Event, cap(events)),
	}
}

// Events implements lifecycle.Source.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start implements lifecycle.Source. The bridge runs until ctx is done or
// the input channel closes; the output channel closes with it.
func (s *Source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.pump)
	return nil
}

// pump forwards input to output. core.Event satisfies lifecycle.Event
// through its String method, so events cross without wrapping.
func (s *Source) pump(ctx context.Context) error {
	defer close(s.out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.in:
			if !ok {
				return nil
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

var _ lifecycle.Source = (*Source)(nil)
