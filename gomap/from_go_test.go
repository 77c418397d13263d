package gomap

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/awaitjson/go-awaitjson/ir"
)

func TestFromGoScalars(t *testing.T) {
	node, err := FromGo("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.StringType || node.String != "hello" {
		t.Errorf("expected string node 'hello', got %v", node)
	}

	node, err = FromGo(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.NumberType || node.Int64 == nil || *node.Int64 != 42 {
		t.Errorf("expected int node 42, got %v", node)
	}

	node, err = FromGo(uint8(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Int64 == nil || *node.Int64 != 7 {
		t.Errorf("expected int node 7, got %v", node)
	}

	node, err = FromGo(2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.NumberType || node.Float64 == nil || *node.Float64 != 2.5 {
		t.Errorf("expected float node 2.5, got %v", node)
	}

	node, err = FromGo(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.BoolType || !node.Bool {
		t.Errorf("expected bool node true, got %v", node)
	}

	node, err = FromGo(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.NullType {
		t.Errorf("expected null node, got %v", node)
	}
}

func TestFromGoStructTags(t *testing.T) {
	type User struct {
		Name     string `json:"name"`
		Age      int    `json:"age,omitempty"`
		Secret   string `json:"-"`
		Untagged bool
	}

	node, err := FromGo(User{Name: "ana", Secret: "hide", Untagged: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ir.Get(node, "name"); got == nil || got.String != "ana" {
		t.Errorf("expected name='ana', got %v", got)
	}
	// Age is zero and omitempty, Secret is "-".
	if got := ir.Get(node, "age"); got != nil {
		t.Errorf("expected age omitted, got %v", got)
	}
	if got := ir.Get(node, "Secret"); got != nil {
		t.Errorf("expected Secret skipped, got %v", got)
	}
	if got := ir.Get(node, "Untagged"); got == nil || !got.Bool {
		t.Errorf("expected Untagged=true, got %v", got)
	}
}

func TestFromGoFieldOrder(t *testing.T) {
	type Out struct {
		Zebra  int `json:"zebra"`
		Apple  int `json:"apple"`
		Mango  int `json:"mango"`
		Banana int `json:"banana"`
	}

	node, err := FromGo(Out{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []string
	for _, f := range node.Fields {
		order = append(order, f.String)
	}
	expected := "zebra,apple,mango,banana"
	if got := strings.Join(order, ","); got != expected {
		t.Errorf("expected field order %q, got %q", expected, got)
	}
}

func TestFromGoEmbedded(t *testing.T) {
	type Base struct {
		ID int `json:"id"`
	}
	type Thing struct {
		Base
		Name string `json:"name"`
	}

	node, err := FromGo(Thing{Base: Base{ID: 3}, Name: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ir.Get(node, "id"); got == nil || got.Int64 == nil || *got.Int64 != 3 {
		t.Errorf("expected flattened id=3, got %v", got)
	}
	if node.Fields[0].String != "id" || node.Fields[1].String != "name" {
		t.Errorf("expected embedded fields first, got %v then %v",
			node.Fields[0].String, node.Fields[1].String)
	}
}

func TestFromGoEmbeddedConflict(t *testing.T) {
	type Base struct {
		Name string `json:"name"`
	}
	type Thing struct {
		Base
		Name string `json:"name"`
	}

	_, err := FromGo(Thing{})
	if err == nil {
		t.Fatal("expected error for conflicting field names")
	}
	if !strings.Contains(err.Error(), "conflict") {
		t.Errorf("expected conflict error, got: %v", err)
	}
}

func TestFromGoMapSorted(t *testing.T) {
	node, err := FromGo(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []string
	for _, f := range node.Fields {
		order = append(order, f.String)
	}
	if got := strings.Join(order, ","); got != "a,b,c" {
		t.Errorf("expected sorted keys a,b,c, got %q", got)
	}
}

func TestFromGoIntKeyMap(t *testing.T) {
	node, err := FromGo(map[int]string{10: "ten", 2: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if node.Fields[0].Int64 == nil || *node.Fields[0].Int64 != 2 {
		t.Errorf("expected first key 2, got %v", node.Fields[0])
	}
	if node.Fields[1].Int64 == nil || *node.Fields[1].Int64 != 10 {
		t.Errorf("expected second key 10, got %v", node.Fields[1])
	}
	if node.Values[0].String != "two" {
		t.Errorf("expected first value 'two', got %q", node.Values[0].String)
	}
}

func TestFromGoBadMapKey(t *testing.T) {
	_, err := FromGo(map[float64]int{1.5: 1})
	if err == nil {
		t.Fatal("expected error for float map keys")
	}
	var merr *MarshalError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MarshalError, got %T", err)
	}
}

func TestFromGoBytes(t *testing.T) {
	node, err := FromGo([]byte("raw"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.StringType || node.String != "raw" {
		t.Errorf("expected string node 'raw', got %v", node)
	}
}

func TestFromGoJSONNumber(t *testing.T) {
	node, err := FromGo(json.Number("1e999"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.NumberType || node.Number != "1e999" {
		t.Errorf("expected literal number node '1e999', got %v", node)
	}
}

func TestFromGoTextMarshaler(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	node, err := FromGo(ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.StringType || node.String != "2024-05-01T12:00:00Z" {
		t.Errorf("expected RFC3339 string, got %v", node)
	}
}

type loudString string

func (s *loudString) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(string(*s))), nil
}

func TestFromGoTextMarshalerPointerReceiver(t *testing.T) {
	type Rec struct {
		Tag loudString `json:"tag"`
	}
	// The field is addressable through the pointer, so the pointer
	// receiver MarshalText applies.
	node, err := FromGo(&Rec{Tag: "quiet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ir.Get(node, "tag"); got == nil || got.String != "QUIET" {
		t.Errorf("expected tag='QUIET', got %v", got)
	}
}

func TestFromGoNodePassthrough(t *testing.T) {
	original := ir.FromString("keep")
	type Box struct {
		Inner *ir.Node `json:"inner"`
	}

	node, err := FromGo(Box{Inner: original})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ir.Get(node, "inner")
	if got == nil || got.String != "keep" {
		t.Fatalf("expected inner='keep', got %v", got)
	}
	if got == original {
		t.Error("expected a clone, got the original node")
	}
}

func TestFromGoWaiterValue(t *testing.T) {
	p := ir.NewPromise()
	type Job struct {
		Result ir.Waiter `json:"result"`
	}

	node, err := FromGo(Job{Result: p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ir.Get(node, "result")
	if got == nil || got.Type != ir.PendingType {
		t.Fatalf("expected pending node, got %v", got)
	}
	if got.Waiter != ir.Waiter(p) {
		t.Error("expected the promise to back the pending node")
	}
}

func TestFromGoSourceValue(t *testing.T) {
	type Job struct {
		Items ir.Source `json:"items"`
	}

	node, err := FromGo(Job{Items: ir.SourceOf(ir.FromInt(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ir.Get(node, "items")
	if got == nil || got.Type != ir.StreamType {
		t.Fatalf("expected stream node, got %v", got)
	}
}

func TestFromGoNilAsyncFieldIsNull(t *testing.T) {
	type Job struct {
		Result ir.Waiter `json:"result"`
	}

	node, err := FromGo(Job{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ir.Get(node, "result"); got == nil || got.Type != ir.NullType {
		t.Errorf("expected null for nil waiter, got %v", got)
	}
}

func TestFromGoFuncAdapter(t *testing.T) {
	fn := func(ctx context.Context) (interface{}, error) {
		return map[string]int{"n": 1}, nil
	}

	node, err := FromGo(fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.PendingType {
		t.Fatalf("expected pending node, got %v", node)
	}

	resolved, err := node.Waiter.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ir.Get(resolved, "n"); got == nil || got.Int64 == nil || *got.Int64 != 1 {
		t.Errorf("expected resolved n=1, got %v", got)
	}
}

func TestFromGoFuncAdapterError(t *testing.T) {
	boom := errors.New("boom")
	fn := func(ctx context.Context) (interface{}, error) {
		return nil, boom
	}

	node, err := FromGo(fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := node.Waiter.Await(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestFromGoChannelAdapter(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 1
	ch <- 2
	close(ch)

	node, err := FromGo(ch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.StreamType {
		t.Fatalf("expected stream node, got %v", node)
	}

	ctx := context.Background()
	for _, expected := range []int64{1, 2} {
		elem, err := node.Source.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elem.Int64 == nil || *elem.Int64 != expected {
			t.Errorf("expected %d, got %v", expected, elem)
		}
	}
	if _, err := node.Source.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF after close, got %v", err)
	}
}

func TestFromGoChannelCancel(t *testing.T) {
	ch := make(chan int)

	node, err := FromGo(ch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := node.Source.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFromGoSendOnlyChannel(t *testing.T) {
	var ch chan<- int = make(chan int)
	_, err := FromGo(ch)
	if err == nil {
		t.Fatal("expected error for send-only channel")
	}
	if !strings.Contains(err.Error(), "send-only") {
		t.Errorf("expected send-only message, got: %v", err)
	}
}

func TestFromGoDefaultHook(t *testing.T) {
	node, err := FromGo(complex(1, 2), WithDefault(func(v interface{}) (interface{}, error) {
		return "unrepresentable", nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.String != "unrepresentable" {
		t.Errorf("expected hook replacement, got %v", node)
	}
}

func TestFromGoDefaultHookError(t *testing.T) {
	boom := errors.New("boom")
	_, err := FromGo(complex(1, 2), WithDefault(func(v interface{}) (interface{}, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestFromGoUnsupportedType(t *testing.T) {
	_, err := FromGo(func() {})
	if err == nil {
		t.Fatal("expected error for plain func")
	}
	var merr *MarshalError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MarshalError, got %T", err)
	}
	if !strings.Contains(merr.Message, "unsupported type") {
		t.Errorf("expected unsupported type message, got: %v", merr)
	}
}

func TestFromGoErrorFieldPath(t *testing.T) {
	type Inner struct {
		Bad func() `json:"bad"`
	}
	type Outer struct {
		In Inner `json:"in"`
	}

	_, err := FromGo(Outer{})
	var merr *MarshalError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MarshalError, got %T", err)
	}
	if merr.FieldPath != "in.bad" {
		t.Errorf("expected field path 'in.bad', got %q", merr.FieldPath)
	}
}

func TestFromGoNilPointer(t *testing.T) {
	var p *int
	node, err := FromGo(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != ir.NullType {
		t.Errorf("expected null node, got %v", node)
	}
}

func TestFromGoNilMapAndSlice(t *testing.T) {
	type Holder struct {
		M map[string]int `json:"m"`
		S []int          `json:"s"`
	}

	node, err := FromGo(Holder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ir.Get(node, "m"); got == nil || got.Type != ir.NullType {
		t.Errorf("expected null for nil map, got %v", got)
	}
	// A nil slice still renders as an empty array.
	if got := ir.Get(node, "s"); got == nil || got.Type != ir.ArrayType || len(got.Values) != 0 {
		t.Errorf("expected empty array for nil slice, got %v", got)
	}
}
