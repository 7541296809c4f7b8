package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/modules/estimate/domain/reference"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type ReferenceService struct {
	repo reference.Repository
}

func NewReferenceService(repo reference.Repository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

func (s *ReferenceService) GetProjects(ctx context.Context) ([]reference.Project, error) {
	return s.repo.GetProjects(ctx)
}

func (s *ReferenceService) GetBlocks(ctx context.Context, projectID uuid.UUID) ([]reference.Block, error) {
	return s.repo.GetBlocks(ctx, projectID)
}

func (s *ReferenceService) GetLocations(ctx context.Context) ([]reference.Location, error) {
	return s.repo.GetLocations(ctx)
}

func (s *ReferenceService) GetRooms(ctx context.Context) ([]reference.Room, error) {
	return s.repo.GetRooms(ctx)
}

func (s *ReferenceService) CreateRoom(ctx context.Context, name string) (reference.Room, error) {
	var created reference.Room
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateRoom(txCtx, name)
		return err
	})
	if err != nil {
		return reference.Room{}, err
	}
	return created, nil
}

func (s *ReferenceService) GetRoomNumbers(ctx context.Context, projectID uuid.UUID) ([]reference.RoomNumber, error) {
	return s.repo.GetRoomNumbers(ctx, projectID)
}

func (s *ReferenceService) GetOrCreateRoomNumber(ctx context.Context, projectID uuid.UUID, name string) (reference.RoomNumber, error) {
	var out reference.RoomNumber
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		out, err = s.repo.GetOrCreateRoomNumber(txCtx, projectID, name)
		return err
	})
	if err != nil {
		return reference.RoomNumber{}, err
	}
	return out, nil
}

func (s *ReferenceService) GetDocumentationTags(ctx context.Context) ([]reference.DocumentationTag, error) {
	return s.repo.GetDocumentationTags(ctx)
}

func (s *ReferenceService) CreateDocumentationTag(ctx context.Context, data reference.DocumentationTag) (reference.DocumentationTag, error) {
	var created reference.DocumentationTag
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateDocumentationTag(txCtx, data)
		return err
	})
	if err != nil {
		return reference.DocumentationTag{}, err
	}
	return created, nil
}

func (s *ReferenceService) UpdateDocumentationTag(ctx context.Context, data reference.DocumentationTag) (reference.DocumentationTag, error) {
	var updated reference.DocumentationTag
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.UpdateDocumentationTag(txCtx, data)
		return err
	})
	if err != nil {
		return reference.DocumentationTag{}, err
	}
	return updated, nil
}

func (s *ReferenceService) DeleteDocumentationTag(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteDocumentationTag(txCtx, id)
	})
}

func (s *ReferenceService) GetMaterials(ctx context.Context, search string) ([]reference.Material, error) {
	return s.repo.GetMaterials(ctx, search)
}

func (s *ReferenceService) CreateMaterial(ctx context.Context, name string) (reference.Material, error) {
	var created reference.Material
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateMaterial(txCtx, name)
		return err
	})
	if err != nil {
		return reference.Material{}, err
	}
	return created, nil
}

func (s *ReferenceService) GetUnits(ctx context.Context) ([]reference.Unit, error) {
	return s.repo.GetUnits(ctx)
}

func (s *ReferenceService) GetNomenclature(ctx context.Context, search string) ([]reference.Nomenclature, error) {
	return s.repo.GetNomenclature(ctx, search)
}

func (s *ReferenceService) GetSuppliers(ctx context.Context, nomenclatureID uuid.UUID) ([]reference.Supplier, error) {
	return s.repo.GetSuppliers(ctx, nomenclatureID)
}
