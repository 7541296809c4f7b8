package services

import (
	"context"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/portalobject"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

const (
	opPortalObjectsAll  = "portal_objects.all"
	opPortalObjectsTree = "portal_objects.tree"
)

type PortalObjectService struct {
	repo  portalobject.Repository
	cache *querycache.Cache
}

func NewPortalObjectService(repo portalobject.Repository, cache *querycache.Cache) *PortalObjectService {
	return &PortalObjectService{repo: repo, cache: cache}
}

func (s *PortalObjectService) GetAll(ctx context.Context) ([]portalobject.PortalObject, error) {
	v, err := s.cache.GetOrLoad(ctx, querycache.NewKey(opPortalObjectsAll), func(ctx context.Context) (any, error) {
		return s.repo.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]portalobject.PortalObject), nil
}

func (s *PortalObjectService) GetByID(ctx context.Context, id uint) (portalobject.PortalObject, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PortalObjectService) GetByCode(ctx context.Context, code string) (portalobject.PortalObject, error) {
	return s.repo.GetByCode(ctx, code)
}

// Tree returns the visible navigation forest. Objects whose parent is
// filtered out (for example an invisible section) surface as roots.
func (s *PortalObjectService) Tree(ctx context.Context) ([]*portalobject.WithChildren, error) {
	v, err := s.cache.GetOrLoad(ctx, querycache.NewKey(opPortalObjectsTree), func(ctx context.Context) (any, error) {
		items, err := s.repo.GetVisible(ctx)
		if err != nil {
			return nil, err
		}
		return portalobject.BuildTree(items), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*portalobject.WithChildren), nil
}

func (s *PortalObjectService) Create(ctx context.Context, data portalobject.PortalObject) (portalobject.PortalObject, error) {
	var created portalobject.PortalObject
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return portalobject.PortalObject{}, err
	}
	s.invalidate()
	return created, nil
}

func (s *PortalObjectService) Update(ctx context.Context, data portalobject.PortalObject) (portalobject.PortalObject, error) {
	var updated portalobject.PortalObject
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return portalobject.PortalObject{}, err
	}
	s.invalidate()
	return updated, nil
}

func (s *PortalObjectService) Delete(ctx context.Context, id uint) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *PortalObjectService) invalidate() {
	s.cache.InvalidateOp(opPortalObjectsAll, opPortalObjectsTree)
}
