package wire

import (
	"encoding/json"
	"testing"
	"time"

	"dboard/geometry"
	"dboard/scene"
)

var testHeader = Header{Board: "demo", User: "u-1"}

func TestEncodeMousePositionShape(t *testing.T) {
	data, err := Encode([]Event{MousePosition{Header: testHeader, Position: geometry.Pt(3, 4)}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var batch []map[string]json.RawMessage
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("batch length = %d, want 1", len(batch))
	}
	ev := batch[0]
	for _, key := range []string{"type", "board", "user", "pos"} {
		if _, ok := ev[key]; !ok {
			t.Errorf("missing top-level key %q in %s", key, data)
		}
	}
	if _, ok := ev["rq"]; ok {
		t.Errorf("mouse position must flatten its header, got %s", data)
	}
}

func TestEncodeAddFigureNestsHeader(t *testing.T) {
	data, err := Encode([]Event{AddFigure{
		Req:  testHeader,
		Rect: geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(100, 50)),
		Text: "New figure",
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var batch []map[string]json.RawMessage
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if _, ok := batch[0]["rq"]; !ok {
		t.Errorf("add figure must nest its header under rq, got %s", data)
	}
	if _, ok := batch[0]["board"]; ok {
		t.Errorf("add figure header leaked to the top level: %s", data)
	}
}

func TestDecodeBatchRoundTrip(t *testing.T) {
	in := []Event{
		MousePosition{Header: testHeader, Position: geometry.Pt(1, 2)},
		AddFigure{Req: testHeader, Rect: geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(10, 10)), Text: "a"},
		AddArrow{Req: testHeader, StartID: "1", EndID: ""},
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeBatch(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("decoded %d events, want %d", len(out), len(in))
	}
	if mp, ok := out[0].(MousePosition); !ok || mp.Position != geometry.Pt(1, 2) {
		t.Errorf("event 0 = %#v, want the original mouse position", out[0])
	}
	if af, ok := out[1].(AddFigure); !ok || af.Text != "a" || af.Req != testHeader {
		t.Errorf("event 1 = %#v, want the original figure", out[1])
	}
	if aa, ok := out[2].(AddArrow); !ok || aa.StartID != "1" || aa.EndID != "" {
		t.Errorf("event 2 = %#v, want the original arrow", out[2])
	}
}

func TestDecodeBatchRejectsUnknownType(t *testing.T) {
	if _, err := DecodeBatch([]byte(`[{"type":"Nope"}]`)); err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
	if _, err := DecodeBatch([]byte(`{"type":"MousePosition"}`)); err == nil {
		t.Fatal("expected an error for a non-array batch")
	}
}

func TestBatcherCoalescesWithinWindow(t *testing.T) {
	clock := time.Unix(0, 0)
	b := NewBatcherClock(100*time.Microsecond, func() time.Time { return clock })

	first := MousePosition{Header: testHeader, Position: geometry.Pt(1, 1)}
	second := MousePosition{Header: testHeader, Position: geometry.Pt(2, 2)}
	if got := b.Push(first); got != nil {
		t.Fatalf("first push flushed early: %v", got)
	}
	clock = clock.Add(50 * time.Microsecond)
	if got := b.Push(second); got != nil {
		t.Fatalf("push inside the window flushed early: %v", got)
	}

	batch := b.Flush()
	if len(batch) != 2 {
		t.Fatalf("batch length = %d, want 2", len(batch))
	}
	if batch[0].(MousePosition).Position != geometry.Pt(1, 1) || batch[1].(MousePosition).Position != geometry.Pt(2, 2) {
		t.Errorf("batch order lost: %#v", batch)
	}
}

func TestBatcherFlushesAfterWindow(t *testing.T) {
	clock := time.Unix(0, 0)
	b := NewBatcherClock(100*time.Microsecond, func() time.Time { return clock })

	b.Push(MousePosition{Header: testHeader, Position: geometry.Pt(1, 1)})
	clock = clock.Add(150 * time.Microsecond)
	batch := b.Push(MousePosition{Header: testHeader, Position: geometry.Pt(2, 2)})
	if len(batch) != 1 {
		t.Fatalf("batch length = %d, want 1", len(batch))
	}
	if batch[0].(MousePosition).Position != geometry.Pt(1, 1) {
		t.Errorf("flushed batch = %#v, want only the first event", batch)
	}
	if rest := b.Flush(); len(rest) != 1 || rest[0].(MousePosition).Position != geometry.Pt(2, 2) {
		t.Errorf("pending after flush = %#v, want the second event", rest)
	}
}

func TestApplyMousePositionOnlyMovesCursor(t *testing.T) {
	s := scene.NewStore()
	cursors := Cursors{}
	Apply([]Event{
		MousePosition{Header: Header{Board: "demo", User: "u-1"}, Position: geometry.Pt(5, 6)},
		MousePosition{Header: Header{Board: "demo", User: "u-1"}, Position: geometry.Pt(7, 8)},
	}, s, cursors)
	if s.Len() != 0 {
		t.Errorf("cursor events must not create cells, store has %d", s.Len())
	}
	if cursors["u-1"] != geometry.Pt(7, 8) {
		t.Errorf("cursor = %v, want the later position to win", cursors["u-1"])
	}
}

func TestApplyAddFigureUsesFreshIDs(t *testing.T) {
	s := scene.NewStore()
	s.Insert(scene.NewRectCell(s.NextID(), geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(10, 10)), "local"))

	Apply([]Event{AddFigure{
		Req:  testHeader,
		Rect: geometry.RectFromPoints(geometry.Pt(20, 20), geometry.Pt(40, 40)),
		Text: "remote",
	}}, s, nil)

	if s.Len() != 2 {
		t.Fatalf("store has %d cells, want 2", s.Len())
	}
	cell, ok := s.Get(2)
	if !ok {
		t.Fatal("remote figure should land on the next local id")
	}
	if cell.Text() != "remote" {
		t.Errorf("text = %q, want %q", cell.Text(), "remote")
	}
}

func TestApplyAddArrowBindsKnownCells(t *testing.T) {
	s := scene.NewStore()
	a := scene.NewRectCell(s.NextID(), geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(40, 40)), "a")
	s.Insert(a)

	Apply([]Event{AddArrow{Req: testHeader, StartID: "1", EndID: "99"}}, s, nil)

	edge, err := s.Edge(2)
	if err != nil {
		t.Fatalf("arrow cell: %v", err)
	}
	if b, ok := edge.Start.(scene.Bound); !ok || b.Cell != a.ID {
		t.Errorf("start = %#v, want bound to cell %d", edge.Start, a.ID)
	}
	if _, ok := edge.End.(scene.Free); !ok {
		t.Errorf("end = %#v, want free for an unknown remote id", edge.End)
	}
	con, err := s.Connectable(a.ID)
	if err != nil {
		t.Fatalf("connectable: %v", err)
	}
	if len(con.Edges) != 1 || con.Edges[0] != 2 {
		t.Errorf("incidence = %v, want [2]", con.Edges)
	}
}
