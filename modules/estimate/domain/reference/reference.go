package reference

import (
	"context"

	"github.com/google/uuid"
)

// Dictionary entities: flat named references the chessboard rows and
// finishing documents point at.

type Project struct {
	ID   uuid.UUID
	Name string
}

type Block struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
}

type Location struct {
	ID   uuid.UUID
	Name string
}

type Room struct {
	ID   uuid.UUID
	Name string
}

// RoomNumber is scoped per project and unique by (project_id, name);
// it is created on first use.
type RoomNumber struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
}

type DocumentationTag struct {
	ID        uuid.UUID
	TagNumber int
	Name      string
}

type Material struct {
	ID   uuid.UUID
	Name string
}

type Unit struct {
	ID   uuid.UUID
	Name string
}

type Nomenclature struct {
	ID         uuid.UUID
	Name       string
	MaterialID *uuid.UUID
}

type Supplier struct {
	ID   uuid.UUID
	Name string
}

type Repository interface {
	GetProjects(ctx context.Context) ([]Project, error)
	GetBlocks(ctx context.Context, projectID uuid.UUID) ([]Block, error)
	GetLocations(ctx context.Context) ([]Location, error)

	GetRooms(ctx context.Context) ([]Room, error)
	CreateRoom(ctx context.Context, name string) (Room, error)

	GetRoomNumbers(ctx context.Context, projectID uuid.UUID) ([]RoomNumber, error)
	// GetOrCreateRoomNumber returns the existing (project_id, name)
	// row or inserts it.
	GetOrCreateRoomNumber(ctx context.Context, projectID uuid.UUID, name string) (RoomNumber, error)

	// GetDocumentationTags lists tags ordered by tag_number.
	GetDocumentationTags(ctx context.Context) ([]DocumentationTag, error)
	CreateDocumentationTag(ctx context.Context, data DocumentationTag) (DocumentationTag, error)
	UpdateDocumentationTag(ctx context.Context, data DocumentationTag) (DocumentationTag, error)
	DeleteDocumentationTag(ctx context.Context, id uuid.UUID) error

	GetMaterials(ctx context.Context, search string) ([]Material, error)
	CreateMaterial(ctx context.Context, name string) (Material, error)
	GetUnits(ctx context.Context) ([]Unit, error)

	GetNomenclature(ctx context.Context, search string) ([]Nomenclature, error)
	GetSuppliers(ctx context.Context, nomenclatureID uuid.UUID) ([]Supplier, error)
}
