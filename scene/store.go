package scene

import (
	"fmt"
	"iter"
	"slices"
)

// Store owns every cell of a board, keyed by id, plus the draw ordering:
// a separate id sequence defining z-order and selection priority
// (insertion order by default, mutable via BringToFront). The store is
// not safe for concurrent use; it belongs to the interaction thread, and
// remote edits are applied between frames.
type Store struct {
	cells  map[ID]*Cell
	order  []ID
	nextID ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{cells: make(map[ID]*Cell)}
}

// NextID hands out a fresh cell id. Ids are never reused while the board
// lives; the counter only resets with the board.
func (s *Store) NextID() ID {
	s.nextID++
	return s.nextID
}

// Len returns the number of live cells.
func (s *Store) Len() int { return len(s.cells) }

// Insert adds a cell at the top of the draw order. Inserting an id that
// already exists replaces the cell in place, keeping its order slot.
func (s *Store) Insert(c *Cell) {
	if _, exists := s.cells[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.cells[c.ID] = c
}

// Get looks a cell up by id.
func (s *Store) Get(id ID) (*Cell, bool) {
	c, ok := s.cells[id]
	return c, ok
}

// Remove deletes a cell from the map and the ordering in one step, then
// settles the graph: edges bound to the removed cell degrade their
// endpoint to free at its last resolved position, and a removed edge is
// stripped from its cells' incidence lists. Removing an unknown id is a
// no-op.
func (s *Store) Remove(id ID) {
	c, ok := s.cells[id]
	if !ok {
		return
	}
	delete(s.cells, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	if removed := c.AsEdge(); removed != nil {
		for _, other := range s.cells {
			if con := other.AsConnectable(); con != nil {
				if i := slices.Index(con.Edges, id); i >= 0 {
					con.Edges = slices.Delete(con.Edges, i, i+1)
				}
			}
		}
		return
	}
	for _, other := range s.cells {
		if e := other.AsEdge(); e != nil {
			e.Detach(id)
		}
	}
}

// BringToFront moves the cell to the top of the draw order. O(n) by
// re-slicing the ordering; boards are small and this keeps the ordering a
// plain slice.
func (s *Store) BringToFront(id ID) {
	i := slices.Index(s.order, id)
	if i < 0 || i == len(s.order)-1 {
		return
	}
	s.order = append(slices.Delete(s.order, i, i+1), id)
}

// InOrder yields the live cells following the draw order, back to front.
// The sequence is lazy and restartable. Ids without a live cell are
// skipped; the remove invariant means there should be none.
func (s *Store) InOrder() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, id := range s.order {
			if c, ok := s.cells[id]; ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Connectable resolves an id to its connectable role. It is the guard
// used whenever code needs specifically a shape cell.
func (s *Store) Connectable(id ID) (*Connectable, error) {
	c, ok := s.cells[id]
	if !ok {
		return nil, fmt.Errorf("cell %d: %w", id, ErrCellNotFound)
	}
	con := c.AsConnectable()
	if con == nil {
		return nil, fmt.Errorf("cell %d: %w", id, ErrWrongCellType)
	}
	return con, nil
}

// Edge resolves an id to its edge role.
func (s *Store) Edge(id ID) (*Edge, error) {
	c, ok := s.cells[id]
	if !ok {
		return nil, fmt.Errorf("cell %d: %w", id, ErrCellNotFound)
	}
	e := c.AsEdge()
	if e == nil {
		return nil, fmt.Errorf("cell %d: %w", id, ErrWrongCellType)
	}
	return e, nil
}

// RecomputeEdges re-resolves every edge polyline against the current cell
// geometry. Called after any operation that may have moved a cell.
func (s *Store) RecomputeEdges() {
	for _, c := range s.cells {
		if e := c.AsEdge(); e != nil {
			e.Recompute(s)
		}
	}
}

// Reset clears the board: all cells, the ordering, and the id counter.
func (s *Store) Reset() {
	s.cells = make(map[ID]*Cell)
	s.order = nil
	s.nextID = 0
}
