package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stroyhub/backoffice/modules/estimate/domain/reference"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/repo"
)

const (
	projectsQuery  = `SELECT id, name FROM projects ORDER BY name`
	blocksQuery    = `SELECT id, project_id, name FROM blocks WHERE project_id = $1 ORDER BY name`
	locationsQuery = `SELECT id, name FROM locations ORDER BY name`

	roomsQuery      = `SELECT id, name FROM rooms ORDER BY name`
	roomInsertQuery = `INSERT INTO rooms (id, name) VALUES ($1, $2)`

	roomNumbersQuery      = `SELECT id, project_id, name FROM room_numbers WHERE project_id = $1 ORDER BY name`
	roomNumberGetQuery    = `SELECT id, project_id, name FROM room_numbers WHERE project_id = $1 AND name = $2`
	roomNumberInsertQuery = `INSERT INTO room_numbers (id, project_id, name) VALUES ($1, $2, $3)`

	tagsQuery      = `SELECT id, tag_number, name FROM documentation_tags ORDER BY tag_number`
	tagInsertQuery = `INSERT INTO documentation_tags (id, tag_number, name) VALUES ($1, $2, $3)`
	tagUpdateQuery = `UPDATE documentation_tags SET tag_number = $1, name = $2 WHERE id = $3`
	tagDeleteQuery = `DELETE FROM documentation_tags WHERE id = $1`

	materialsQuery      = `SELECT id, name FROM materials`
	materialInsertQuery = `INSERT INTO materials (id, name) VALUES ($1, $2)`
	unitsQuery          = `SELECT id, name FROM units ORDER BY name`

	nomenclatureQuery = `SELECT id, name, material_id FROM nomenclature`
	suppliersQuery    = `
        SELECT s.id, s.name
        FROM suppliers s
        JOIN nomenclature_suppliers ns ON ns.supplier_id = s.id
        WHERE ns.nomenclature_id = $1
        ORDER BY s.name`
)

type PgReferenceRepository struct{}

func NewReferenceRepository() reference.Repository {
	return &PgReferenceRepository{}
}

func queryNamed[T any](ctx context.Context, query string, scan func(pgx.Rows) (T, error), args ...any) ([]T, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (g *PgReferenceRepository) GetProjects(ctx context.Context) ([]reference.Project, error) {
	return queryNamed(ctx, projectsQuery, func(rows pgx.Rows) (reference.Project, error) {
		var p reference.Project
		err := rows.Scan(&p.ID, &p.Name)
		return p, err
	})
}

func (g *PgReferenceRepository) GetBlocks(ctx context.Context, projectID uuid.UUID) ([]reference.Block, error) {
	return queryNamed(ctx, blocksQuery, func(rows pgx.Rows) (reference.Block, error) {
		var b reference.Block
		err := rows.Scan(&b.ID, &b.ProjectID, &b.Name)
		return b, err
	}, projectID)
}

func (g *PgReferenceRepository) GetLocations(ctx context.Context) ([]reference.Location, error) {
	return queryNamed(ctx, locationsQuery, func(rows pgx.Rows) (reference.Location, error) {
		var l reference.Location
		err := rows.Scan(&l.ID, &l.Name)
		return l, err
	})
}

func (g *PgReferenceRepository) GetRooms(ctx context.Context) ([]reference.Room, error) {
	return queryNamed(ctx, roomsQuery, func(rows pgx.Rows) (reference.Room, error) {
		var r reference.Room
		err := rows.Scan(&r.ID, &r.Name)
		return r, err
	})
}

func (g *PgReferenceRepository) CreateRoom(ctx context.Context, name string) (reference.Room, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.Room{}, err
	}
	room := reference.Room{ID: uuid.New(), Name: name}
	if _, err := tx.Exec(ctx, roomInsertQuery, room.ID, room.Name); err != nil {
		return reference.Room{}, errors.Wrap(err, "failed to create room")
	}
	return room, nil
}

func (g *PgReferenceRepository) GetRoomNumbers(ctx context.Context, projectID uuid.UUID) ([]reference.RoomNumber, error) {
	return queryNamed(ctx, roomNumbersQuery, func(rows pgx.Rows) (reference.RoomNumber, error) {
		var rn reference.RoomNumber
		err := rows.Scan(&rn.ID, &rn.ProjectID, &rn.Name)
		return rn, err
	}, projectID)
}

func (g *PgReferenceRepository) GetOrCreateRoomNumber(ctx context.Context, projectID uuid.UUID, name string) (reference.RoomNumber, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.RoomNumber{}, err
	}
	var rn reference.RoomNumber
	err = tx.QueryRow(ctx, roomNumberGetQuery, projectID, name).Scan(&rn.ID, &rn.ProjectID, &rn.Name)
	if err == nil {
		return rn, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return reference.RoomNumber{}, errors.Wrap(err, "failed to look up room number")
	}
	rn = reference.RoomNumber{ID: uuid.New(), ProjectID: projectID, Name: name}
	if _, err := tx.Exec(ctx, roomNumberInsertQuery, rn.ID, rn.ProjectID, rn.Name); err != nil {
		return reference.RoomNumber{}, errors.Wrap(err, "failed to create room number")
	}
	return rn, nil
}

func (g *PgReferenceRepository) GetDocumentationTags(ctx context.Context) ([]reference.DocumentationTag, error) {
	return queryNamed(ctx, tagsQuery, func(rows pgx.Rows) (reference.DocumentationTag, error) {
		var t reference.DocumentationTag
		err := rows.Scan(&t.ID, &t.TagNumber, &t.Name)
		return t, err
	})
}

func (g *PgReferenceRepository) CreateDocumentationTag(ctx context.Context, data reference.DocumentationTag) (reference.DocumentationTag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.DocumentationTag{}, err
	}
	out := data
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if _, err := tx.Exec(ctx, tagInsertQuery, out.ID, out.TagNumber, out.Name); err != nil {
		return reference.DocumentationTag{}, errors.Wrap(err, "failed to create documentation tag")
	}
	return out, nil
}

func (g *PgReferenceRepository) UpdateDocumentationTag(ctx context.Context, data reference.DocumentationTag) (reference.DocumentationTag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.DocumentationTag{}, err
	}
	if _, err := tx.Exec(ctx, tagUpdateQuery, data.TagNumber, data.Name, data.ID); err != nil {
		return reference.DocumentationTag{}, errors.Wrap(err, "failed to update documentation tag")
	}
	return data, nil
}

func (g *PgReferenceRepository) DeleteDocumentationTag(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, tagDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete documentation tag")
	}
	return nil
}

func (g *PgReferenceRepository) GetMaterials(ctx context.Context, search string) ([]reference.Material, error) {
	var conds []string
	var args []any
	if search != "" {
		f := repo.ILike("%" + search + "%")
		conds = append(conds, f.String("name", 1))
		args = append(args, f.Value()...)
	}
	query := repo.Join(materialsQuery, repo.JoinWhere(conds...), "ORDER BY name")
	return queryNamed(ctx, query, func(rows pgx.Rows) (reference.Material, error) {
		var m reference.Material
		err := rows.Scan(&m.ID, &m.Name)
		return m, err
	}, args...)
}

func (g *PgReferenceRepository) CreateMaterial(ctx context.Context, name string) (reference.Material, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.Material{}, err
	}
	m := reference.Material{ID: uuid.New(), Name: name}
	if _, err := tx.Exec(ctx, materialInsertQuery, m.ID, m.Name); err != nil {
		return reference.Material{}, errors.Wrap(err, "failed to create material")
	}
	return m, nil
}

func (g *PgReferenceRepository) GetUnits(ctx context.Context) ([]reference.Unit, error) {
	return queryNamed(ctx, unitsQuery, func(rows pgx.Rows) (reference.Unit, error) {
		var u reference.Unit
		err := rows.Scan(&u.ID, &u.Name)
		return u, err
	})
}

func (g *PgReferenceRepository) GetNomenclature(ctx context.Context, search string) ([]reference.Nomenclature, error) {
	var conds []string
	var args []any
	if search != "" {
		f := repo.ILike("%" + search + "%")
		conds = append(conds, f.String("name", 1))
		args = append(args, f.Value()...)
	}
	query := repo.Join(nomenclatureQuery, repo.JoinWhere(conds...), "ORDER BY name")
	return queryNamed(ctx, query, func(rows pgx.Rows) (reference.Nomenclature, error) {
		var n reference.Nomenclature
		err := rows.Scan(&n.ID, &n.Name, &n.MaterialID)
		return n, err
	}, args...)
}

func (g *PgReferenceRepository) GetSuppliers(ctx context.Context, nomenclatureID uuid.UUID) ([]reference.Supplier, error) {
	return queryNamed(ctx, suppliersQuery, func(rows pgx.Rows) (reference.Supplier, error) {
		var s reference.Supplier
		err := rows.Scan(&s.ID, &s.Name)
		return s, err
	}, nomenclatureID)
}
