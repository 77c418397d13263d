package ir

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestPromiseResolve(t *testing.T) {
	p := NewPromise()
	go p.Resolve(FromString("done"))
	n, err := p.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.String != "done" {
		t.Errorf("expected %q, got %q", "done", n.String)
	}
	// Await after completion returns the same value.
	n, err = p.Await(context.Background())
	if err != nil || n.String != "done" {
		t.Errorf("second await: got %v, %v", n, err)
	}
}

func TestPromiseReject(t *testing.T) {
	boom := errors.New("boom")
	p := NewPromise()
	p.Reject(boom)
	_, err := p.Await(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestPromiseDoubleCompletePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on second completion")
		}
	}()
	p := NewPromise()
	p.Resolve(Null())
	p.Resolve(Null())
}

func TestPromiseAwaitHonorsContext(t *testing.T) {
	p := NewPromise()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Await(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFeedSendClose(t *testing.T) {
	f := NewFeed(2)
	ctx := context.Background()
	if err := f.Send(ctx, FromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Send(ctx, FromInt(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	for want := int64(1); want <= 2; want++ {
		n, err := f.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *n.Int64 != want {
			t.Errorf("expected %d, got %d", want, *n.Int64)
		}
	}
	if _, err := f.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	// EOF is sticky.
	if _, err := f.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF again, got %v", err)
	}
}

func TestFeedFailDeliversAfterBuffered(t *testing.T) {
	boom := errors.New("boom")
	f := NewFeed(1)
	ctx := context.Background()
	if err := f.Send(ctx, FromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Fail(boom)
	if _, err := f.Next(ctx); err != nil {
		t.Fatalf("buffered element lost: %v", err)
	}
	if _, err := f.Next(ctx); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestFeedStopUnblocksSender(t *testing.T) {
	f := NewFeed(0)
	sent := make(chan error, 1)
	go func() {
		sent <- f.Send(context.Background(), FromInt(1))
	}()
	f.Stop()
	select {
	case err := <-sent:
		if !errors.Is(err, ErrFeedStopped) {
			t.Errorf("expected ErrFeedStopped, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sender still blocked after Stop")
	}
}

func TestSourceOf(t *testing.T) {
	s := SourceOf(FromInt(1), FromInt(2))
	ctx := context.Background()
	for want := int64(1); want <= 2; want++ {
		n, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *n.Int64 != want {
			t.Errorf("expected %d, got %d", want, *n.Int64)
		}
	}
	if _, err := s.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestSourceSeq(t *testing.T) {
	seq := func(yield func(*Node) bool) {
		for i := int64(0); i < 3; i++ {
			if !yield(FromInt(i)) {
				return
			}
		}
	}
	s := SourceSeq(seq)
	ctx := context.Background()
	var got []int64
	for {
		n, err := s.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, *n.Int64)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestSourceSeqStopReleases(t *testing.T) {
	released := make(chan struct{})
	seq := func(yield func(*Node) bool) {
		defer close(released)
		for i := int64(0); ; i++ {
			if !yield(FromInt(i)) {
				return
			}
		}
	}
	s := SourceSeq(seq)
	if _, err := s.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.(interface{ Stop() }).Stop()
	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("iterator not released after Stop")
	}
}
