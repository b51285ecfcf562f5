package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"dboard/geometry"
)

// Board files hold the durable subset of a store: rectangle cells as
// rect plus label, edges as endpoints plus waypoints. Interaction state
// and view transforms are not persisted.

type document struct {
	Cells []cellDoc `json:"cells"`
}

type cellDoc struct {
	ID   ID     `json:"id"`
	Kind string `json:"kind"`

	Rect *geometry.Rect `json:"rect,omitempty"`
	Text string         `json:"text,omitempty"`

	Start  *endpointDoc     `json:"start,omitempty"`
	End    *endpointDoc     `json:"end,omitempty"`
	Points []geometry.Point `json:"points,omitempty"`
}

type endpointDoc struct {
	Cell  ID              `json:"cell,omitempty"`
	Index int             `json:"index,omitempty"`
	At    *geometry.Point `json:"at,omitempty"`
}

const (
	kindRect = "rect"
	kindEdge = "edge"
)

func endpointToDoc(ep Endpoint) *endpointDoc {
	switch v := ep.(type) {
	case Bound:
		return &endpointDoc{Cell: v.Cell, Index: v.Index}
	case Free:
		at := v.At
		return &endpointDoc{At: &at}
	}
	return nil
}

func (d *endpointDoc) endpoint() Endpoint {
	if d == nil {
		return Free{}
	}
	if d.At != nil {
		return Free{At: *d.At}
	}
	return Bound{Cell: d.Cell, Index: d.Index}
}

// EncodeDocument serializes the store as an indented board document.
func EncodeDocument(s *Store) ([]byte, error) {
	doc := document{Cells: make([]cellDoc, 0, s.Len())}
	for cell := range s.InOrder() {
		if e := cell.AsEdge(); e != nil {
			doc.Cells = append(doc.Cells, cellDoc{
				ID:     cell.ID,
				Kind:   kindEdge,
				Start:  endpointToDoc(e.Start),
				End:    endpointToDoc(e.End),
				Points: e.Points,
			})
			continue
		}
		rect := cell.Rect()
		doc.Cells = append(doc.Cells, cellDoc{
			ID:   cell.ID,
			Kind: kindRect,
			Rect: &rect,
			Text: cell.Text(),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDocument rebuilds a store from a board document. Cells come back
// in document order; the id counter resumes past the highest id seen.
func DecodeDocument(data []byte) (*Store, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	s := NewStore()
	for i, cd := range doc.Cells {
		switch cd.Kind {
		case kindRect:
			if cd.Rect == nil {
				return nil, fmt.Errorf("decode board: cell %d has no rect", i)
			}
			s.Insert(NewRectCell(cd.ID, *cd.Rect, cd.Text))
		case kindEdge:
			e := NewEdge(cd.Start.endpoint(), cd.End.endpoint())
			if len(cd.Points) >= 2 {
				e.Points = cd.Points
			}
			s.Insert(NewEdgeCell(cd.ID, e))
		default:
			return nil, fmt.Errorf("decode board: cell %d has unknown kind %q", i, cd.Kind)
		}
		if cd.ID > s.nextID {
			s.nextID = cd.ID
		}
	}
	// Rebuild edge incidence and resolved endpoints from the documents.
	for cell := range s.InOrder() {
		e := cell.AsEdge()
		if e == nil {
			continue
		}
		if id, ok := e.StartCell(); ok {
			if con, err := s.Connectable(id); err == nil {
				con.Edges = append(con.Edges, cell.ID)
			}
		}
		if id, ok := e.EndCell(); ok {
			if con, err := s.Connectable(id); err == nil {
				con.Edges = append(con.Edges, cell.ID)
			}
		}
	}
	s.RecomputeEdges()
	return s, nil
}

// LoadBoard reads a board document from a file.
func LoadBoard(filename string) (*Store, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

// SaveBoard writes the store to a file as a board document.
func SaveBoard(filename string, s *Store) error {
	data, err := EncodeDocument(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
