package scene

import "errors"

// Graph-consistency errors returned by the typed store extractors.
var (
	// ErrCellNotFound means the id has no live cell in the store.
	ErrCellNotFound = errors.New("cell not found")
	// ErrWrongCellType means the id resolved to a cell of the other role.
	ErrWrongCellType = errors.New("wrong cell type")
)
