package gomap

import (
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/awaitjson/go-awaitjson/ir"
)

// FromGo converts a Go value to an IR node.
//
// Scalars, slices, maps and structs map to their IR counterparts. Struct
// fields follow `json` tags (rename, "-", omitempty) and keep declaration
// order; string-keyed maps are sorted; integer-keyed maps become objects
// with integer keys in numeric order.
//
// Asynchronous values pass through: an ir.Waiter becomes a pending node,
// an ir.Source a stream node. A func(ctx) (any, error) becomes a pending
// node that converts its result on demand, and a receivable channel
// becomes a stream node that converts each received element. A *ir.Node
// is cloned in as-is.
func FromGo(v interface{}, opts ...Option) (*ir.Node, error) {
	cfg := newConfig(opts)
	return fromGo(v, cfg)
}

func fromGo(v interface{}, cfg *config) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	return fromValue(reflect.ValueOf(v), "", visited, cfg)
}

// fromValue converts a reflect.Value to an IR node. fieldPath is used for
// error reporting (e.g., "person.address.street"). visited tracks pointer
// addresses to detect circular references.
func fromValue(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}

	if val.CanInterface() {
		switch v := val.Interface().(type) {
		case *ir.Node:
			if v == nil {
				return ir.Null(), nil
			}
			return v.Clone(), nil
		case ir.Waiter:
			return ir.FromWaiter(v), nil
		case ir.Source:
			return ir.FromSource(v), nil
		case func(context.Context) (interface{}, error):
			return ir.FromWaiter(futureFunc(v, cfg)), nil
		case json.Number:
			return ir.FromNumber(string(v)), nil
		}
	}

	typ := val.Type()
	kind := typ.Kind()

	// Handle pointers - check for cycles
	if kind == reflect.Ptr {
		if val.IsNil() {
			return ir.Null(), nil
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return textNode(tm, fieldPath)
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := fromValue(val.Elem(), fieldPath, visited, cfg)
		delete(visited, ptrAddr)
		return node, err
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return textNode(tm, fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return textNode(tm, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromInt(int64(val.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return ir.FromString(string(val.Bytes())), nil
		}
		return fromSlice(val, fieldPath, visited, cfg)

	case reflect.Array:
		return fromSlice(val, fieldPath, visited, cfg)

	case reflect.Map:
		return fromMap(val, fieldPath, visited, cfg)

	case reflect.Struct:
		return fromStruct(val, fieldPath, visited, cfg)

	case reflect.Chan:
		if typ.ChanDir() == reflect.SendDir {
			return fallback(val, fieldPath, visited, cfg, "send-only channel")
		}
		return ir.FromSource(&chanSource{ch: val, cfg: cfg}), nil

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return fromValue(val.Elem(), fieldPath, visited, cfg)

	default:
		return fallback(val, fieldPath, visited, cfg, fmt.Sprintf("unsupported type: %s", typ))
	}
}

// fallback runs the Default hook on values the mapping does not cover.
func fallback(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config, msg string) (*ir.Node, error) {
	if cfg.defaultFn == nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: msg}
	}
	out, err := cfg.defaultFn(val.Interface())
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "default hook failed", Err: err}
	}
	return fromValue(reflect.ValueOf(out), fieldPath, visited, cfg)
}

func textNode(tm encoding.TextMarshaler, fieldPath string) (*ir.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
	}
	return ir.FromString(string(text)), nil
}

// fromSlice converts a slice or array to an IR array node.
func fromSlice(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if val.Kind() == reflect.Slice && !val.IsNil() {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	length := val.Len()
	elements := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		elemNode, err := fromValue(val.Index(i), elemPath, visited, cfg)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

// fromMap converts a map to an IR object node. String keys sort
// lexically, integer keys numerically; other key types are not
// supported.
func fromMap(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	switch val.Type().Key().Kind() {
	case reflect.String:
		irMap := make(map[string]*ir.Node, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			valuePath := childPath(fieldPath, key)
			valueNode, err := fromValue(iter.Value(), valuePath, visited, cfg)
			if err != nil {
				return nil, err
			}
			irMap[key] = valueNode
		}
		return ir.FromMap(irMap), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intMap := make(map[int64]*ir.Node, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := iter.Key().Int()
			valuePath := fmt.Sprintf("%s[%d]", fieldPath, key)
			valueNode, err := fromValue(iter.Value(), valuePath, visited, cfg)
			if err != nil {
				return nil, err
			}
			intMap[key] = valueNode
		}
		return ir.FromIntKeysMap(intMap), nil

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings or integers, got %s", val.Type().Key()),
		}
	}
}

// fromStruct converts a struct to an IR object node. Fields keep their
// declaration order. Embedded structs are flattened into the parent.
func fromStruct(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	typ := val.Type()
	var kvs []ir.KeyVal
	seen := make(map[string]bool, typ.NumField())

	add := func(name string, node *ir.Node) error {
		if seen[name] {
			return &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("field name conflict: %q appears twice", name),
			}
		}
		seen[name] = true
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: node})
		return nil
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		tagged := false
		omitEmpty := false
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" && len(parts) == 1 {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
				tagged = true
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitEmpty = true
				}
			}
		}

		fieldVal := val.Field(i)

		if field.Anonymous && !tagged {
			elem := fieldVal
			if elem.Kind() == reflect.Ptr {
				if elem.IsNil() {
					continue
				}
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				embedded, err := fromValue(elem, fieldPath, visited, cfg)
				if err != nil {
					return nil, err
				}
				if embedded.Type == ir.ObjectType {
					for j, fieldNameNode := range embedded.Fields {
						if err := add(fieldNameNode.String, embedded.Values[j]); err != nil {
							return nil, err
						}
					}
				}
				continue
			}
		}

		if omitEmpty && isEmptyValue(fieldVal) {
			continue
		}

		nextPath := childPath(fieldPath, name)
		fieldNode, err := fromValue(fieldVal, nextPath, visited, cfg)
		if err != nil {
			return nil, err
		}
		if err := add(name, fieldNode); err != nil {
			return nil, err
		}
	}

	return ir.FromKeyVals(kvs), nil
}

// childPath extends a field path for error reporting (e.g.,
// "person.address" + "street").
func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// isEmptyValue reports emptiness the way `json:"...,omitempty"` does.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// futureFunc adapts a result-producing function into a Waiter whose
// resolution converts the result.
func futureFunc(fn func(context.Context) (interface{}, error), cfg *config) ir.Waiter {
	return ir.WaiterFunc(func(ctx context.Context) (*ir.Node, error) {
		out, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return fromGo(out, cfg)
	})
}

// chanSource adapts a receivable channel into a Source. A closed channel
// ends the stream.
type chanSource struct {
	ch  reflect.Value
	cfg *config
}

func (s *chanSource) Next(ctx context.Context) (*ir.Node, error) {
	chosen, recv, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: s.ch},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
	})
	if chosen != 0 {
		return nil, ctx.Err()
	}
	if !ok {
		return nil, io.EOF
	}
	return fromGo(recv.Interface(), s.cfg)
}
