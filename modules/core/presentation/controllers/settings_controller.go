package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/storagesettings"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
)

const settingsObjectCode = "admin.settings"

type SettingsController struct {
	storage *services.StorageSettingsService
}

func NewSettingsController(storage *services.StorageSettingsService) *SettingsController {
	return &SettingsController{storage: storage}
}

func (c *SettingsController) Key() string { return "/settings" }

func (c *SettingsController) Register(r *mux.Router) {
	read := r.PathPrefix("/settings/storage").Subrouter()
	read.Use(coremiddleware.RequireObject(settingsObjectCode, permission.ActionView))
	read.HandleFunc("", c.get).Methods(http.MethodGet)

	edit := r.PathPrefix("/settings/storage").Subrouter()
	edit.Use(coremiddleware.RequireObject(settingsObjectCode, permission.ActionEdit))
	edit.HandleFunc("", c.save).Methods(http.MethodPut)
}

type storageSettingsDTO struct {
	Token      string `json:"token" validate:"required"`
	BasePath   string `json:"base_path"`
	MakePublic bool   `json:"make_public"`
}

type storageSettingsResponse struct {
	BasePath   string `json:"base_path"`
	MakePublic bool   `json:"make_public"`
	HasToken   bool   `json:"has_token"`
}

func (c *SettingsController) get(w http.ResponseWriter, r *http.Request) {
	settings, err := c.storage.Get(r.Context())
	if err != nil {
		if errors.Is(err, persistence.ErrStorageSettingsNotFound) {
			// Not configured yet; the client gets an empty form.
			writeJSON(w, http.StatusOK, storageSettingsResponse{})
			return
		}
		writeError(w, r, err)
		return
	}
	// The token is write-only; it never leaves the server.
	writeJSON(w, http.StatusOK, storageSettingsResponse{
		BasePath:   settings.BasePath,
		MakePublic: settings.MakePublic,
		HasToken:   settings.Token != "",
	})
}

func (c *SettingsController) save(w http.ResponseWriter, r *http.Request) {
	var dto storageSettingsDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := c.storage.Save(r.Context(), storagesettings.Settings{
		Token:      dto.Token,
		BasePath:   dto.BasePath,
		MakePublic: dto.MakePublic,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, storageSettingsResponse{
		BasePath:   saved.BasePath,
		MakePublic: saved.MakePublic,
		HasToken:   saved.Token != "",
	})
}
