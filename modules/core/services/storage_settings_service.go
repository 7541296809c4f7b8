package services

import (
	"context"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/storagesettings"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type StorageSettingsService struct {
	repo storagesettings.Repository
}

func NewStorageSettingsService(repo storagesettings.Repository) *StorageSettingsService {
	return &StorageSettingsService{repo: repo}
}

func (s *StorageSettingsService) Get(ctx context.Context) (storagesettings.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *StorageSettingsService) Save(ctx context.Context, data storagesettings.Settings) (storagesettings.Settings, error) {
	var saved storagesettings.Settings
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.repo.Save(txCtx, data)
		return err
	})
	if err != nil {
		return storagesettings.Settings{}, err
	}
	return saved, nil
}
