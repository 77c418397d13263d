// Package stream provides event-based encoding of documents.
//
// The stream package models a document as a flat sequence of structural
// events: container begin/end markers, keys, and scalar values. A State
// tracks well-formedness of an event sequence, and an Encoder renders
// events in the fixed pretty style: two-space indentation, ", "
// separators placed before the newline, ": " after keys, and empty
// containers as bare bracket pairs.
//
// # Example: Encoding
//
//	enc := stream.NewEncoder(writer)
//	enc.BeginObject()
//	enc.WriteKey("name")
//	enc.WriteString("value")
//	enc.EndObject()
//
// # Deferred Brackets
//
// An opening bracket is only written together with the container's first
// child, or with the end marker when the container turns out empty. A
// caller may therefore begin a container before knowing whether it has
// any children. Package encode relies on this to render pending
// sequences whose length is unknown until drained.
//
// # Example: Recording
//
//	rec := stream.NewRecorder()
//	rec.WriteEvent(&stream.Event{Type: stream.EventBeginArray})
//	rec.WriteEvent(&stream.Event{Type: stream.EventEndArray})
//	err := stream.CopyEvents(enc, rec.Reader())
//
// # Colors
//
// Setting Encoder.Colors wraps every token in terminal color escapes,
// keyed by node type and attribute (key, value, or punctuation). Color
// output is for display only and is not valid input for parsers.
package stream
