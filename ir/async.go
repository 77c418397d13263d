package ir

import (
	"context"
	"io"
	"iter"
	"sync"
)

// A Waiter delivers the value a pending node resolves to. Await blocks the
// calling goroutine until the value is available, the waiter fails, or ctx
// is done. A waiter is single-shot: the encoder awaits it at most once.
//
// Await may return (nil, nil); that resolves to null.
type Waiter interface {
	Await(ctx context.Context) (*Node, error)
}

// WaiterFunc adapts a function to the Waiter interface.
type WaiterFunc func(ctx context.Context) (*Node, error)

func (f WaiterFunc) Await(ctx context.Context) (*Node, error) {
	return f(ctx)
}

// A Source produces the elements of a pending sequence, in order. Next
// returns io.EOF after the final element; any other error is terminal.
// Sources are single-shot and not restartable.
//
// A source may additionally implement Stop() or io.Closer; the encoder
// calls one of them when it abandons the source before exhaustion.
type Source interface {
	Next(ctx context.Context) (*Node, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*Node, error)

func (f SourceFunc) Next(ctx context.Context) (*Node, error) {
	return f(ctx)
}

// Promise is the producer side of a pending value. The zero value is not
// usable; construct with NewPromise.
type Promise struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	node      *Node
	err       error
}

func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolve completes the promise with n. Completing a promise twice is a
// producer bug and panics.
func (p *Promise) Resolve(n *Node) {
	p.complete(n, nil)
}

// Reject completes the promise with an error.
func (p *Promise) Reject(err error) {
	p.complete(nil, err)
}

func (p *Promise) complete(n *Node, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		panic("ir: promise completed twice")
	}
	p.node, p.err = n, err
	p.completed = true
	close(p.done)
}

func (p *Promise) Await(ctx context.Context) (*Node, error) {
	select {
	case <-p.done:
		return p.node, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Feed is the producer side of a pending sequence: a channel-backed Source.
// Producers Send elements and finish with Close or Fail; Send after either
// panics, like sending on a closed channel.
type Feed struct {
	ch        chan *Node
	stop      chan struct{}
	closeOnce sync.Once
	stopOnce  sync.Once
	mu        sync.Mutex
	err       error
}

// NewFeed returns a feed whose producers may run ahead of the consumer by
// up to buffer elements before Send blocks.
func NewFeed(buffer int) *Feed {
	return &Feed{
		ch:   make(chan *Node, buffer),
		stop: make(chan struct{}),
	}
}

// Send delivers the next element, blocking while the buffer is full. It
// returns ErrFeedStopped after the consumer abandons the feed.
func (f *Feed) Send(ctx context.Context, n *Node) error {
	select {
	case f.ch <- n:
		return nil
	case <-f.stop:
		return ErrFeedStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the sequence; Next returns io.EOF once the buffered elements
// are drained.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.ch) })
}

// Fail ends the sequence with err, delivered after the buffered elements.
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
	f.Close()
}

func (f *Feed) Next(ctx context.Context) (*Node, error) {
	select {
	case n, ok := <-f.ch:
		if !ok {
			return nil, f.terminal()
		}
		return n, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop tells producers the consumer is gone. Subsequent Sends unblock with
// ErrFeedStopped.
func (f *Feed) Stop() {
	f.stopOnce.Do(func() { close(f.stop) })
}

func (f *Feed) terminal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	return io.EOF
}

// SourceOf returns an in-memory source over nodes.
func SourceOf(nodes ...*Node) Source {
	return &sliceSource{nodes: nodes}
}

type sliceSource struct {
	nodes []*Node
	i     int
}

func (s *sliceSource) Next(ctx context.Context) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.i >= len(s.nodes) {
		return nil, io.EOF
	}
	n := s.nodes[s.i]
	s.i++
	return n, nil
}

// SourceSeq adapts an iterator to a Source via iter.Pull. Stop releases the
// underlying iteration.
func SourceSeq(seq iter.Seq[*Node]) Source {
	next, stop := iter.Pull(seq)
	return &seqSource{next: next, stop: stop}
}

type seqSource struct {
	next func() (*Node, bool)
	stop func()
}

func (s *seqSource) Next(ctx context.Context) (*Node, error) {
	if err := ctx.Err(); err != nil {
		s.stop()
		return nil, err
	}
	n, ok := s.next()
	if !ok {
		return nil, io.EOF
	}
	return n, nil
}

func (s *seqSource) Stop() {
	s.stop()
}
