package stream

import (
	"testing"
)

func TestEventTypeTextRoundTrip(t *testing.T) {
	for _, et := range []EventType{
		EventBeginObject, EventEndObject,
		EventBeginArray, EventEndArray,
		EventKey, EventIntKey,
		EventString, EventInt, EventFloat, EventNumber,
		EventBool, EventNull,
	} {
		text, err := et.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var back EventType
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != et {
			t.Errorf("expected %v, got %v", et, back)
		}
	}
}

func TestEventClassification(t *testing.T) {
	if !EventKey.IsKey() {
		t.Error("Key should be a key event")
	}
	if !EventIntKey.IsKey() {
		t.Error("IntKey should be a key event")
	}
	if EventString.IsKey() {
		t.Error("String should not be a key event")
	}
	if !(&Event{Type: EventBeginArray}).IsValueStart() {
		t.Error("BeginArray should start a value")
	}
	if !(&Event{Type: EventNumber}).IsValueStart() {
		t.Error("Number should start a value")
	}
	if (&Event{Type: EventEndArray}).IsValueStart() {
		t.Error("EndArray should not start a value")
	}
	if (&Event{Type: EventKey}).IsValueStart() {
		t.Error("Key should not start a value")
	}
}
