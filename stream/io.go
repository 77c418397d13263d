package stream

import (
	"io"
)

// EventReader provides events from a source (recording, empty stream, etc.).
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events (encoder, recorder, etc.).
type EventSink interface {
	WriteEvent(*Event) error
}

// EmptyEventReader provides an empty event stream (for null state).
type EmptyEventReader struct{}

// NewEmptyEventReader creates an empty event reader.
func NewEmptyEventReader() *EmptyEventReader {
	return &EmptyEventReader{}
}

// ReadEvent returns io.EOF immediately (empty stream).
func (r *EmptyEventReader) ReadEvent() (*Event, error) {
	return nil, io.EOF
}

// Recorder captures events in memory so an encode run can be inspected
// or replayed later.
type Recorder struct {
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WriteEvent appends a copy of the event to the recording.
func (r *Recorder) WriteEvent(ev *Event) error {
	r.events = append(r.events, *ev)
	return nil
}

// Events returns the recorded events in write order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reader returns a reader replaying the recording from the start.
func (r *Recorder) Reader() *ReplayReader {
	return &ReplayReader{events: r.events}
}

// ReplayReader reads back a recorded event sequence.
type ReplayReader struct {
	events []Event
	at     int
}

// ReadEvent returns the next recorded event, io.EOF at the end.
func (r *ReplayReader) ReadEvent() (*Event, error) {
	if r.at >= len(r.events) {
		return nil, io.EOF
	}
	ev := &r.events[r.at]
	r.at++
	return ev, nil
}

// CopyEvents pipes events from src into dst until io.EOF.
func CopyEvents(dst EventSink, src EventReader) error {
	for {
		ev, err := src.ReadEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dst.WriteEvent(ev); err != nil {
			return err
		}
	}
}
