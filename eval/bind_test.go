package eval

import (
	"context"
	"testing"

	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/ir"
)

type rawExprTest struct {
	in, out string
}

func TestRawExpr(t *testing.T) {
	tests := []rawExprTest{
		{
			in:  "abc",
			out: "",
		},
		{
			in:  ".[x]",
			out: "x",
		},
		{
			in:  ".[ a + b ]",
			out: "a + b",
		},
		{
			in:  ".[x",
			out: "",
		},
		{
			in:  ".[]",
			out: "",
		},
		{
			in:  "$[x]",
			out: "",
		},
		{
			in:  " .[x]",
			out: "",
		},
	}
	for i := range tests {
		tc := &tests[i]
		got := RawExpr(tc.in)
		if got == tc.out {
			continue
		}
		t.Errorf("got %q want %q", got, tc.out)
	}
}

func TestBindDefersRawStrings(t *testing.T) {
	// { "sum": ".[ a + b ]", "plain": "x" }
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("sum"), Val: ir.FromString(".[ a + b ]")},
		{Key: ir.FromString("plain"), Val: ir.FromString("x")},
	})

	bound, err := Bind(node, Env{"a": 20, "b": 22})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := ir.Get(bound, "sum")
	if sum == nil || sum.Type != ir.PendingType {
		t.Fatalf("expected pending sum, got %v", sum)
	}
	if plain := ir.Get(bound, "plain"); plain == nil || plain.String != "x" {
		t.Errorf("expected plain passthrough, got %v", plain)
	}

	got, err := sum.Waiter.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int64 == nil || *got.Int64 != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestBindNestedArray(t *testing.T) {
	// [ "keep", [ ".[ n * 2 ]" ] ]
	node := ir.FromSlice([]*ir.Node{
		ir.FromString("keep"),
		ir.FromSlice([]*ir.Node{ir.FromString(".[ n * 2 ]")}),
	})

	bound, err := Bind(node, Env{"n": 21})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inner := bound.Values[1].Values[0]
	if inner.Type != ir.PendingType {
		t.Fatalf("expected pending element, got %v", inner.Type)
	}
	got, err := inner.Waiter.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int64 == nil || *got.Int64 != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestBindPassesThroughPending(t *testing.T) {
	p := ir.NewPromise()
	pending := ir.FromWaiter(p)
	node := ir.FromSlice([]*ir.Node{pending})

	bound, err := Bind(node, Env{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound.Values[0] != pending {
		t.Error("expected the pending node to pass through untouched")
	}
}

func TestBindCompileError(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromString(".[ a + ]")})
	if _, err := Bind(node, Env{}); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestBindThenEncode(t *testing.T) {
	// { "sum": ".[ a + b ]" }
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("sum"), Val: ir.FromString(".[ a + b ]")},
	})
	bound, err := Bind(node, Env{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := encode.String(context.Background(), bound)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"sum\": 3\n}"
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}
