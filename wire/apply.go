package wire

import (
	"strconv"

	"dboard/geometry"
	"dboard/scene"
)

// Cursors tracks the last reported pointer position per remote user.
type Cursors map[string]geometry.Point

// Apply folds a decoded batch into the store, in batch order. Cursor
// updates never touch cells. Added cells always get fresh local ids;
// remote ids are not reconciled, so an arrow endpoint naming a cell this
// store never saw becomes a free endpoint at the origin.
func Apply(events []Event, s *scene.Store, cursors Cursors) {
	for _, ev := range events {
		switch v := ev.(type) {
		case MousePosition:
			if cursors != nil {
				cursors[v.User] = v.Position
			}
		case AddFigure:
			cell := scene.NewRectCell(s.NextID(), v.Rect, v.Text)
			s.Insert(cell)
		case AddArrow:
			start := remoteEndpoint(s, v.StartID)
			end := remoteEndpoint(s, v.EndID)
			edge := scene.NewEdge(start, end)
			id := s.NextID()
			s.Insert(scene.NewEdgeCell(id, edge))
			attachIncidence(s, start, id)
			attachIncidence(s, end, id)
			edge.Recompute(s)
		}
	}
}

// remoteEndpoint resolves a sender-local cell id against this store.
// Bindings land on connection point 0; the sender's point index is not
// on the wire.
func remoteEndpoint(s *scene.Store, id string) scene.Endpoint {
	n, err := strconv.Atoi(id)
	if err != nil {
		return scene.Free{}
	}
	if _, err := s.Connectable(scene.ID(n)); err != nil {
		return scene.Free{}
	}
	return scene.Bound{Cell: scene.ID(n)}
}

func attachIncidence(s *scene.Store, ep scene.Endpoint, edge scene.ID) {
	b, ok := ep.(scene.Bound)
	if !ok {
		return
	}
	if con, err := s.Connectable(b.Cell); err == nil {
		con.Edges = append(con.Edges, edge)
	}
}
