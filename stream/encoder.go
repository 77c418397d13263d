package stream

import (
	"io"
	"strings"

	"github.com/awaitjson/go-awaitjson/ir"
	"github.com/awaitjson/go-awaitjson/token"
)

// Encoder writes a single document through push calls, in the fixed pretty
// style: two-space indentation, ", " pair/element separators placed before
// the newline, ": " after keys, empty containers as bare bracket pairs.
//
// A container's opening bracket is deferred until its first child, so a
// container whose emptiness is not known up front (a pending sequence)
// still renders compactly when it turns out empty.
type Encoder struct {
	// Colors, ASCIIOnly and StrictFloats configure rendering and are set
	// before the first write.
	Colors       *Colors
	ASCIIOnly    bool
	StrictFloats bool

	writer io.Writer
	state  *State
	offset int64
	frames []encFrame
}

type encFrame struct {
	open   byte
	close  byte
	typ    ir.Type
	opened bool
}

// NewEncoder creates a new Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: w,
		state:  NewState(),
	}
}

// Queryable State Methods

// Depth returns the current nesting depth (0 = top level).
func (e *Encoder) Depth() int {
	return e.state.Depth()
}

// CurrentPath returns the $-rooted path of the write position.
func (e *Encoder) CurrentPath() string {
	return e.state.CurrentPath()
}

// IsInObject returns true if currently inside an object.
func (e *Encoder) IsInObject() bool {
	return e.state.IsInObject()
}

// IsInArray returns true if currently inside an array.
func (e *Encoder) IsInArray() bool {
	return e.state.IsInArray()
}

// CurrentKey returns the current object key (if in object).
func (e *Encoder) CurrentKey() (string, bool) {
	return e.state.CurrentKey()
}

// CurrentIndex returns the current array index (if in array).
func (e *Encoder) CurrentIndex() (int, bool) {
	return e.state.CurrentIndex()
}

// Offset returns the byte offset in the output stream.
func (e *Encoder) Offset() int64 {
	return e.offset
}

// Done reports whether the root value has completed.
func (e *Encoder) Done() bool {
	return e.state.Done()
}

// Reset resets the encoder to write a new document to w. The rendering
// configuration is kept.
func (e *Encoder) Reset(w io.Writer) {
	e.writer = w
	e.state = NewState()
	e.offset = 0
	e.frames = e.frames[:0]
}

// Structure Control Methods

// BeginObject begins an object. The opening brace is written with the
// first pair, or with EndObject when the object turns out empty.
func (e *Encoder) BeginObject() error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventBeginObject}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	e.frames = append(e.frames, encFrame{open: '{', close: '}', typ: ir.ObjectType})
	return nil
}

// EndObject ends an object.
func (e *Encoder) EndObject() error {
	return e.end(EventEndObject)
}

// BeginArray begins an array. The opening bracket is deferred like
// BeginObject's brace.
func (e *Encoder) BeginArray() error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventBeginArray}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	e.frames = append(e.frames, encFrame{open: '[', close: ']', typ: ir.ArrayType})
	return nil
}

// EndArray ends an array.
func (e *Encoder) EndArray() error {
	return e.end(EventEndArray)
}

func (e *Encoder) end(t EventType) error {
	var top encFrame
	if len(e.frames) > 0 {
		top = e.frames[len(e.frames)-1]
	}
	if err := e.state.ProcessEvent(&Event{Type: t}); err != nil {
		return err
	}
	if !top.opened {
		if err := e.writeString(e.punct(top.typ, string([]byte{top.open, top.close}))); err != nil {
			return err
		}
	} else {
		if err := e.writeString("\n" + strings.Repeat("  ", len(e.frames)-1)); err != nil {
			return err
		}
		if err := e.writeString(e.punct(top.typ, string(top.close))); err != nil {
			return err
		}
	}
	e.frames = e.frames[:len(e.frames)-1]
	return nil
}

// Value Writing Methods

// WriteKey writes a quoted string key followed by ": ".
func (e *Encoder) WriteKey(key string) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventKey, Key: key}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	if err := e.writeString(e.color(ir.StringType, FieldColor, e.quote(key))); err != nil {
		return err
	}
	return e.writeString(e.punct(ir.ObjectType, ": "))
}

// WriteIntKey writes a bare integer key followed by ": ".
func (e *Encoder) WriteIntKey(key int64) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventIntKey, IntKey: key}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	if err := e.writeString(e.color(ir.NumberType, FieldColor, token.FormatInt(key))); err != nil {
		return err
	}
	return e.writeString(e.punct(ir.ObjectType, ": "))
}

// WriteScalarKey writes any scalar node as a key: strings quoted, numbers,
// bools and null as bare tokens.
func (e *Encoder) WriteScalarKey(n *ir.Node) error {
	if n == nil {
		return &Error{Msg: "nil key"}
	}
	switch n.Type {
	case ir.StringType:
		return e.WriteKey(n.String)
	case ir.NumberType:
		if n.Int64 != nil {
			return e.WriteIntKey(*n.Int64)
		}
		text, err := e.numberText(n)
		if err != nil {
			return err
		}
		return e.writeBareKey(ir.NumberType, text)
	case ir.BoolType:
		if n.Bool {
			return e.writeBareKey(ir.BoolType, token.True)
		}
		return e.writeBareKey(ir.BoolType, token.False)
	case ir.NullType:
		return e.writeBareKey(ir.NullType, token.Null)
	default:
		return &Error{Msg: "not a scalar key: " + n.Type.String()}
	}
}

// WriteNodeKey writes a resolved node as a key. Scalars follow
// WriteScalarKey; an array key is joined into a single string key from its
// elements' plain texts. Containers and unresolved nodes cannot be keys.
func (e *Encoder) WriteNodeKey(n *ir.Node) error {
	if n != nil && n.Type == ir.ArrayType {
		var b strings.Builder
		for _, el := range n.Values {
			text, err := ScalarText(el, e.StrictFloats)
			if err != nil {
				return err
			}
			b.WriteString(text)
		}
		return e.WriteKey(b.String())
	}
	if n != nil && n.Type == ir.ObjectType {
		return ir.ErrKeyCoercion
	}
	return e.WriteScalarKey(n)
}

func (e *Encoder) writeBareKey(t ir.Type, text string) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventKey, Key: text}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	if err := e.writeString(e.color(t, FieldColor, text)); err != nil {
		return err
	}
	return e.writeString(e.punct(ir.ObjectType, ": "))
}

// WriteString writes a string value.
func (e *Encoder) WriteString(value string) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventString, String: value}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	return e.writeString(e.color(ir.StringType, ValueColor, e.quote(value)))
}

// WriteInt writes an integer value.
func (e *Encoder) WriteInt(value int64) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventInt, Int: value}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	return e.writeString(e.color(ir.NumberType, ValueColor, token.FormatInt(value)))
}

// WriteFloat writes a float value. Under StrictFloats the non-finite
// values are rejected before any output.
func (e *Encoder) WriteFloat(value float64) error {
	text, err := token.FormatFloat(value, e.StrictFloats)
	if err != nil {
		return err
	}
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventFloat, Float: value}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	return e.writeString(e.color(ir.NumberType, ValueColor, text))
}

// WriteNumber writes verbatim numeric text.
func (e *Encoder) WriteNumber(text string) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventNumber, Number: text}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	return e.writeString(e.color(ir.NumberType, ValueColor, text))
}

// WriteBool writes a boolean value.
func (e *Encoder) WriteBool(value bool) error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventBool, Bool: value}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	text := token.False
	if value {
		text = token.True
	}
	return e.writeString(e.color(ir.BoolType, ValueColor, text))
}

// WriteNull writes a null value.
func (e *Encoder) WriteNull() error {
	pfx := e.prefixPlan()
	if err := e.state.ProcessEvent(&Event{Type: EventNull}); err != nil {
		return err
	}
	if err := e.writePrefix(pfx); err != nil {
		return err
	}
	return e.writeString(e.color(ir.NullType, ValueColor, token.Null))
}

// WriteScalar writes any scalar node as a value.
func (e *Encoder) WriteScalar(n *ir.Node) error {
	if n == nil {
		return &Error{Msg: "nil scalar"}
	}
	switch n.Type {
	case ir.StringType:
		return e.WriteString(n.String)
	case ir.NumberType:
		if n.Int64 != nil {
			return e.WriteInt(*n.Int64)
		}
		if n.Float64 != nil {
			return e.WriteFloat(*n.Float64)
		}
		if n.Number != "" {
			return e.WriteNumber(n.Number)
		}
		return &Error{Msg: "number without a value"}
	case ir.BoolType:
		return e.WriteBool(n.Bool)
	case ir.NullType:
		return e.WriteNull()
	default:
		return &Error{Msg: "not a scalar: " + n.Type.String()}
	}
}

// WriteEvent dispatches an event to the corresponding write method,
// making the Encoder an EventSink.
func (e *Encoder) WriteEvent(ev *Event) error {
	switch ev.Type {
	case EventBeginObject:
		return e.BeginObject()
	case EventEndObject:
		return e.EndObject()
	case EventBeginArray:
		return e.BeginArray()
	case EventEndArray:
		return e.EndArray()
	case EventKey:
		return e.WriteKey(ev.Key)
	case EventIntKey:
		return e.WriteIntKey(ev.IntKey)
	case EventString:
		return e.WriteString(ev.String)
	case EventInt:
		return e.WriteInt(ev.Int)
	case EventFloat:
		return e.WriteFloat(ev.Float)
	case EventNumber:
		return e.WriteNumber(ev.Number)
	case EventBool:
		return e.WriteBool(ev.Bool)
	case EventNull:
		return e.WriteNull()
	default:
		return &Error{Msg: "unknown event: " + ev.Type.String()}
	}
}

// Prefix handling

type prefixPlan int

const (
	pfxNone prefixPlan = iota
	pfxFirst
	pfxNext
)

// prefixPlan decides what the next child owes before its own bytes: the
// parent's deferred open bracket or a ", " separator, then the newline and
// indentation. A value directly after its key owes nothing.
func (e *Encoder) prefixPlan() prefixPlan {
	if len(e.frames) == 0 {
		return pfxNone
	}
	cur := e.state.current()
	if cur.obj && cur.hasKey {
		return pfxNone
	}
	if !e.frames[len(e.frames)-1].opened {
		return pfxFirst
	}
	return pfxNext
}

func (e *Encoder) writePrefix(p prefixPlan) error {
	if p == pfxNone {
		return nil
	}
	top := &e.frames[len(e.frames)-1]
	if p == pfxFirst {
		if err := e.writeString(e.punct(top.typ, string(top.open))); err != nil {
			return err
		}
		top.opened = true
	} else {
		if err := e.writeString(e.punct(top.typ, ", ")); err != nil {
			return err
		}
	}
	return e.writeString("\n" + strings.Repeat("  ", len(e.frames)))
}

// Rendering helpers

func (e *Encoder) quote(v string) string {
	if e.ASCIIOnly {
		return token.QuoteASCII(v)
	}
	return token.Quote(v)
}

func (e *Encoder) numberText(n *ir.Node) (string, error) {
	switch {
	case n.Int64 != nil:
		return token.FormatInt(*n.Int64), nil
	case n.Float64 != nil:
		return token.FormatFloat(*n.Float64, e.StrictFloats)
	case n.Number != "":
		return n.Number, nil
	}
	return "", &Error{Msg: "number without a value"}
}

func (e *Encoder) punct(t ir.Type, s string) string {
	return e.color(t, SepColor, s)
}

func (e *Encoder) color(t ir.Type, a ColorAttr, s string) string {
	if e.Colors == nil {
		return s
	}
	return e.Colors.Color(t, a, s)
}

// writeBytes writes bytes to the writer and updates offset.
func (e *Encoder) writeBytes(data []byte) error {
	n, err := e.writer.Write(data)
	if err != nil {
		return err
	}
	e.offset += int64(n)
	return nil
}

func (e *Encoder) writeString(s string) error {
	return e.writeBytes([]byte(s))
}

// ScalarText renders a resolved scalar node as plain text: string content
// verbatim, numbers and keywords as their literal tokens. It is the
// joining rule for sequence-valued keys.
func ScalarText(n *ir.Node, strict bool) (string, error) {
	if n == nil {
		return "", &Error{Msg: "nil scalar"}
	}
	switch n.Type {
	case ir.StringType:
		return n.String, nil
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return token.FormatInt(*n.Int64), nil
		case n.Float64 != nil:
			return token.FormatFloat(*n.Float64, strict)
		case n.Number != "":
			return n.Number, nil
		}
		return "", &Error{Msg: "number without a value"}
	case ir.BoolType:
		if n.Bool {
			return token.True, nil
		}
		return token.False, nil
	case ir.NullType:
		return token.Null, nil
	default:
		return "", ir.ErrKeyCoercion
	}
}
