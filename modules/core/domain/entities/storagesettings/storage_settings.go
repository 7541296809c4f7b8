package storagesettings

import "context"

// Settings is a singleton row: created on first save, updated
// thereafter. At most one row ever exists.
type Settings struct {
	ID         uint
	Token      string
	BasePath   string
	MakePublic bool
}

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, data Settings) (Settings, error)
}
