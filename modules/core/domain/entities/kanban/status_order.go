package kanban

import "context"

// StatusOrder pins the position of one status column on one kanban
// page. Unique per (page, status).
type StatusOrder struct {
	KanbanPage    string
	StatusID      uint
	OrderPosition int
}

type Repository interface {
	GetForPage(ctx context.Context, page string) ([]StatusOrder, error)
	// ReplaceForPage swaps the whole ordered list for the page:
	// delete-all-then-reinsert in one transaction, never patched in
	// place.
	ReplaceForPage(ctx context.Context, page string, statusIDs []uint) error
}
