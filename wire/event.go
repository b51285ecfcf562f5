// Package wire defines the edit-event stream exchanged with other board
// participants: tagged JSON events grouped into batch arrays, a coalescing
// batcher for the outgoing side, and the inbound application of a batch to
// a cell store.
package wire

import (
	"encoding/json"
	"fmt"

	"dboard/geometry"
)

// Header identifies the board and the sending user. User ids are uuids
// assigned per session.
type Header struct {
	Board string `json:"board"`
	User  string `json:"user"`
}

// Event is one edit event. The set is closed; every variant serializes as
// an object with a "type" discriminator.
type Event interface {
	event()
	// EventHeader returns the request header common to every variant.
	EventHeader() Header
}

// MousePosition reports the sender's pointer. Consumers must tolerate
// duplicate and no-op positions; the event never touches the cell store.
type MousePosition struct {
	Header
	Position geometry.Point `json:"pos"`
}

// AddFigure announces a newly placed rectangle cell.
type AddFigure struct {
	Req  Header        `json:"rq"`
	Rect geometry.Rect `json:"rect"`
	Text string        `json:"text"`
}

// AddArrow announces a newly committed edge. The ids are the sender's
// local cell ids; an empty EndID means the edge ends free.
type AddArrow struct {
	Req     Header `json:"rq"`
	StartID string `json:"start_id"`
	EndID   string `json:"end_id"`
}

func (MousePosition) event() {}
func (AddFigure) event()     {}
func (AddArrow) event()      {}

func (m MousePosition) EventHeader() Header { return m.Header }
func (a AddFigure) EventHeader() Header     { return a.Req }
func (a AddArrow) EventHeader() Header      { return a.Req }

// Type discriminators.
const (
	TypeMousePosition = "MousePosition"
	TypeAddFigure     = "AddFigure"
	TypeAddArrow      = "AddArrow"
)

// MarshalJSON adds the type discriminator. The header stays inline for
// MousePosition and nested under "rq" for the others, matching the wire
// format already in the field.

func (m MousePosition) MarshalJSON() ([]byte, error) {
	type alias MousePosition
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: TypeMousePosition, alias: alias(m)})
}

func (a AddFigure) MarshalJSON() ([]byte, error) {
	type alias AddFigure
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: TypeAddFigure, alias: alias(a)})
}

func (a AddArrow) MarshalJSON() ([]byte, error) {
	type alias AddArrow
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: TypeAddArrow, alias: alias(a)})
}

// Encode serializes a batch of events as a JSON array.
func Encode(events []Event) ([]byte, error) {
	return json.Marshal(events)
}

// DecodeBatch parses a batch array. A batch may hold zero or more events;
// any malformed element fails the whole batch, and callers are expected to
// drop it and carry on.
func DecodeBatch(data []byte) ([]Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(r, &probe); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", i, err)
		}
		var (
			ev  Event
			err error
		)
		switch probe.Type {
		case TypeMousePosition:
			var v MousePosition
			err = json.Unmarshal(r, &v)
			ev = v
		case TypeAddFigure:
			var v AddFigure
			err = json.Unmarshal(r, &v)
			ev = v
		case TypeAddArrow:
			var v AddArrow
			err = json.Unmarshal(r, &v)
			ev = v
		default:
			return nil, fmt.Errorf("decode event %d: unknown type %q", i, probe.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("decode event %d (%s): %w", i, probe.Type, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
