package encode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/awaitjson/go-awaitjson/ir"
	"github.com/awaitjson/go-awaitjson/stream"
)

// Encode renders node as a lazy sequence of text fragments. The
// concatenation of the fragments is the rendered document. Fragments are
// cut at suspension points: after each key, and before every await or
// stream pull, so output produced so far is consumable while the producer
// is still working.
//
// The sequence is finite and one-shot. Ranging it a second time yields
// ErrConsumed. Breaking out of the range stops all pulling and releases
// the sources encountered so far.
//
// On failure the sequence ends with ("", err) after the fragments
// produced up to that point. No closing brackets are emitted for
// containers left open by the failure.
func Encode(ctx context.Context, node *ir.Node, opts ...Opt) iter.Seq2[string, error] {
	r := newRun(ctx, opts)
	return func(yield func(string, error) bool) {
		if r.started {
			yield("", ErrConsumed)
			return
		}
		r.started = true
		r.yield = yield
		r.drive(node)
	}
}

// EncodeTo drains Encode into w.
func EncodeTo(ctx context.Context, w io.Writer, node *ir.Node, opts ...Opt) error {
	for frag, err := range Encode(ctx, node, opts...) {
		if err != nil {
			return err
		}
		if _, werr := io.WriteString(w, frag); werr != nil {
			return werr
		}
	}
	return nil
}

// errStop aborts the walk when the consumer stops ranging.
var errStop = errors.New("consumer stopped")

type run struct {
	ctx     context.Context
	yield   func(string, error) bool
	buf     bytes.Buffer
	enc     *stream.Encoder
	strict  bool
	started bool
	path    []string
	open    []ir.Source
}

func newRun(ctx context.Context, opts []Opt) *run {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &run{
		ctx:    ctx,
		strict: cfg.strict,
	}
	r.enc = stream.NewEncoder(&r.buf)
	r.enc.Colors = cfg.colors
	r.enc.ASCIIOnly = cfg.ascii
	r.enc.StrictFloats = cfg.strict
	return r
}

func (r *run) drive(node *ir.Node) {
	defer r.release()
	if err := r.value(node); err != nil {
		if errors.Is(err, errStop) {
			return
		}
		if r.flushNow() != nil {
			return
		}
		r.yield("", err)
		return
	}
	if err := r.flushNow(); err != nil {
		return
	}
}

// value renders one node, resolving pending wrappers first.
func (r *run) value(n *ir.Node) error {
	n, kind, err := r.resolve(n)
	if err != nil {
		return err
	}
	switch kind {
	case ir.KindObject:
		return r.objectValue(n)
	case ir.KindArray:
		return r.arrayValue(n)
	case ir.KindStream:
		return r.streamValue(n)
	default:
		return r.wrap(r.enc.WriteScalar(n))
	}
}

// resolve awaits pending nodes until a renderable node remains. A nil
// result from a waiter stands for null.
func (r *run) resolve(n *ir.Node) (*ir.Node, ir.Kind, error) {
	for {
		kind, err := ir.Classify(n)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s: %w", r.pathString(), err)
		}
		if kind != ir.KindPending {
			return n, kind, nil
		}
		if err := r.flushNow(); err != nil {
			return nil, 0, err
		}
		if err := r.ctx.Err(); err != nil {
			return nil, 0, r.wrap(err)
		}
		next, aerr := n.Waiter.Await(r.ctx)
		if aerr != nil {
			return nil, 0, fmt.Errorf("await %s: %w", r.pathString(), aerr)
		}
		if next == nil {
			next = ir.Null()
		}
		n = next
	}
}

func (r *run) objectValue(n *ir.Node) error {
	if err := r.wrap(r.enc.BeginObject()); err != nil {
		return err
	}
	for i, keyNode := range n.Fields {
		seg, err := r.key(keyNode)
		if err != nil {
			return err
		}
		if err := r.flushNow(); err != nil {
			return err
		}
		r.push("." + seg)
		err = r.value(n.Values[i])
		r.pop()
		if err != nil {
			return err
		}
	}
	return r.wrap(r.enc.EndObject())
}

func (r *run) arrayValue(n *ir.Node) error {
	if err := r.wrap(r.enc.BeginArray()); err != nil {
		return err
	}
	for i, elem := range n.Values {
		r.push("[" + strconv.Itoa(i) + "]")
		err := r.value(elem)
		r.pop()
		if err != nil {
			return err
		}
	}
	return r.wrap(r.enc.EndArray())
}

// streamValue renders a pending sequence as an array, pulling elements
// one at a time. The array stays open until the source ends, so an empty
// source still renders as [].
func (r *run) streamValue(n *ir.Node) error {
	src := n.Source
	r.track(src)
	if err := r.wrap(r.enc.BeginArray()); err != nil {
		return err
	}
	for i := 0; ; i++ {
		if err := r.flushNow(); err != nil {
			return err
		}
		if err := r.ctx.Err(); err != nil {
			return r.wrap(err)
		}
		elem, err := src.Next(r.ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("stream %s[%d]: %w", r.pathString(), i, err)
		}
		if elem == nil {
			elem = ir.Null()
		}
		r.push("[" + strconv.Itoa(i) + "]")
		verr := r.value(elem)
		r.pop()
		if verr != nil {
			return verr
		}
	}
	return r.wrap(r.enc.EndArray())
}

// key renders one key node and returns its path segment text. Scalar
// keys render directly; array and stream keys are drained and joined
// into a single string key; object keys cannot be coerced.
func (r *run) key(n *ir.Node) (string, error) {
	n, kind, err := r.resolve(n)
	if err != nil {
		return "", err
	}
	switch kind {
	case ir.KindScalar:
		text, terr := stream.ScalarText(n, r.strict)
		if terr != nil {
			return "", r.wrap(terr)
		}
		return text, r.wrap(r.enc.WriteScalarKey(n))
	case ir.KindArray:
		return r.joinKey(n.Values)
	case ir.KindStream:
		elems, derr := r.drain(n.Source)
		if derr != nil {
			return "", derr
		}
		return r.joinKey(elems)
	case ir.KindObject:
		return "", fmt.Errorf("key at %s: %w", r.pathString(), ir.ErrKeyCoercion)
	}
	return "", fmt.Errorf("key at %s: %w", r.pathString(), ir.ErrUnsupportedType)
}

// joinKey concatenates the plain texts of resolved scalar elements into
// one string key.
func (r *run) joinKey(elems []*ir.Node) (string, error) {
	var b strings.Builder
	for _, elem := range elems {
		elem, _, err := r.resolve(elem)
		if err != nil {
			return "", err
		}
		text, terr := stream.ScalarText(elem, r.strict)
		if terr != nil {
			return "", fmt.Errorf("key at %s: %w", r.pathString(), terr)
		}
		b.WriteString(text)
	}
	joined := b.String()
	return joined, r.wrap(r.enc.WriteKey(joined))
}

// drain pulls a key source to exhaustion before any key text is written.
func (r *run) drain(src ir.Source) ([]*ir.Node, error) {
	r.track(src)
	var elems []*ir.Node
	for {
		if err := r.flushNow(); err != nil {
			return nil, err
		}
		if err := r.ctx.Err(); err != nil {
			return nil, r.wrap(err)
		}
		elem, err := src.Next(r.ctx)
		if err == io.EOF {
			return elems, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stream %s: %w", r.pathString(), err)
		}
		if elem == nil {
			elem = ir.Null()
		}
		elems = append(elems, elem)
	}
}

// flushNow yields the buffered bytes as one fragment. errStop reports
// that the consumer stopped ranging.
func (r *run) flushNow() error {
	if r.buf.Len() == 0 {
		return nil
	}
	frag := r.buf.String()
	r.buf.Reset()
	if !r.yield(frag, nil) {
		return errStop
	}
	return nil
}

func (r *run) wrap(err error) error {
	if err == nil || errors.Is(err, errStop) {
		return err
	}
	return fmt.Errorf("encode %s: %w", r.pathString(), err)
}

func (r *run) pathString() string {
	return "$" + strings.Join(r.path, "")
}

func (r *run) push(seg string) {
	r.path = append(r.path, seg)
}

func (r *run) pop() {
	r.path = r.path[:len(r.path)-1]
}

func (r *run) track(src ir.Source) {
	r.open = append(r.open, src)
}

// release stops every source seen during the run. Sources that implement
// Stop are stopped; otherwise io.Closer is honored. Waiters never reached
// are simply not awaited.
func (r *run) release() {
	for _, src := range r.open {
		switch c := src.(type) {
		case interface{ Stop() }:
			c.Stop()
		case io.Closer:
			_ = c.Close()
		}
	}
	r.open = nil
}
