package stream

import "fmt"

// Event represents a structural event in an encoding. Events correspond to
// the encoder's API methods, so a recorded event stream can be replayed
// through any EventSink.
type Event struct {
	Type EventType

	// Value fields (only one is set based on Type). Key carries the plain
	// key text for EventKey; Number carries verbatim numeric text.
	Key    string
	IntKey int64
	String string
	Number string
	Int    int64
	Float  float64
	Bool   bool
}

// IsValueStart returns true if this event starts a value (as opposed to a
// key or an end marker). Value-starting events are: BeginObject,
// BeginArray, String, Int, Float, Number, Bool, Null.
func (e *Event) IsValueStart() bool {
	return e.Type == EventBeginObject ||
		e.Type == EventBeginArray ||
		e.Type == EventString ||
		e.Type == EventInt ||
		e.Type == EventFloat ||
		e.Type == EventNumber ||
		e.Type == EventBool ||
		e.Type == EventNull
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventKey
	EventIntKey
	EventString
	EventInt
	EventFloat
	EventNumber
	EventBool
	EventNull
)

func (t EventType) String() string {
	switch t {
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventIntKey:
		return "IntKey"
	case EventString:
		return "String"
	case EventInt:
		return "Int"
	case EventFloat:
		return "Float"
	case EventNumber:
		return "Number"
	case EventBool:
		return "Bool"
	case EventNull:
		return "Null"
	default:
		return "Unknown"
	}
}

func (t EventType) IsKey() bool {
	switch t {
	case EventKey, EventIntKey:
		return true
	default:
		return false
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"BeginObject": EventBeginObject,
		"EndObject":   EventEndObject,
		"BeginArray":  EventBeginArray,
		"EndArray":    EventEndArray,
		"Key":         EventKey,
		"IntKey":      EventIntKey,
		"String":      EventString,
		"Int":         EventInt,
		"Float":       EventFloat,
		"Number":      EventNumber,
		"Bool":        EventBool,
		"Null":        EventNull,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}
