package stream

import (
	"strconv"
	"strings"
)

// State provides minimal stack/state/path management for a single document.
// It processes events in order and rejects sequences that cannot belong to
// a well-formed document: keys outside objects, values without keys, ends
// without begins, material after the root value.
type State struct {
	stack []item
	done  bool
}

type item struct {
	obj    bool
	n      int    // children started
	hasKey bool   // object frame: key written, value outstanding
	key    string // plain text of the current key, for paths
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	n := len(s.stack)
	s.stack = s.stack[:n-1]
	if len(s.stack) == 0 {
		s.done = true
	}
}

func (s *State) current() *item {
	n := len(s.stack)
	return &s.stack[n-1]
}

// startValue accounts for a value starting in the current container, or at
// the root.
func (s *State) startValue() error {
	if len(s.stack) == 0 {
		if s.done {
			return &Error{Msg: "value after root"}
		}
		return nil
	}
	cur := s.current()
	if cur.obj && !cur.hasKey {
		return &Error{Msg: "no key for value in obj"}
	}
	cur.n++
	cur.hasKey = false
	return nil
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginObject:
		if err := s.startValue(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{obj: true})

	case EventEndObject:
		if s.Depth() <= 0 {
			return &Error{Msg: "negative depth"}
		}
		cur := s.current()
		if !cur.obj {
			return &Error{Msg: "end of obj in array"}
		}
		if cur.hasKey {
			return &Error{Msg: "key, no val"}
		}
		s.pop()

	case EventBeginArray:
		if err := s.startValue(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{})

	case EventEndArray:
		if s.Depth() <= 0 {
			return &Error{Msg: "negative depth"}
		}
		if s.current().obj {
			return &Error{Msg: "end of array in obj"}
		}
		s.pop()

	case EventString, EventInt, EventFloat, EventNumber, EventBool, EventNull:
		if err := s.startValue(); err != nil {
			return err
		}
		if len(s.stack) == 0 {
			s.done = true
		}

	case EventKey, EventIntKey:
		if len(s.stack) == 0 {
			return &Error{Msg: "key not in obj"}
		}
		cur := s.current()
		if !cur.obj {
			return &Error{Msg: "key not in obj (2)", Path: s.CurrentPath()}
		}
		if cur.hasKey {
			return &Error{Msg: "key after key"}
		}
		cur.hasKey = true
		if event.Type == EventIntKey {
			cur.key = strconv.FormatInt(event.IntKey, 10)
		} else {
			cur.key = event.Key
		}
	}
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Count returns how many children have started in the open container.
func (s *State) Count() int {
	if len(s.stack) == 0 {
		return 0
	}
	return s.current().n
}

// Done reports whether the root value has completed.
func (s *State) Done() bool {
	return s.done
}

// CurrentPath returns the $-rooted path of the write position, like
// "$.key[0].name".
func (s *State) CurrentPath() string {
	var b strings.Builder
	b.WriteByte('$')
	for i := range s.stack {
		item := &s.stack[i]
		if item.obj {
			if item.key == "" {
				continue
			}
			b.WriteByte('.')
			b.WriteString(item.key)
			continue
		}
		if item.n == 0 {
			continue
		}
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(item.n - 1))
		b.WriteByte(']')
	}
	return b.String()
}

// IsInObject returns true if currently inside an object.
func (s *State) IsInObject() bool {
	if len(s.stack) == 0 {
		return false
	}
	return s.current().obj
}

// IsInArray returns true if currently inside an array.
func (s *State) IsInArray() bool {
	if len(s.stack) == 0 {
		return false
	}
	return !s.current().obj
}

// CurrentKey returns the current object key (if in object).
func (s *State) CurrentKey() (string, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	cur := s.current()
	if !cur.obj || cur.key == "" {
		return "", false
	}
	return cur.key, true
}

// CurrentIndex returns the index of the array element being written, and
// whether the current container is an array with at least one element.
func (s *State) CurrentIndex() (int, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	cur := s.current()
	if cur.obj || cur.n == 0 {
		return 0, false
	}
	return cur.n - 1, true
}
