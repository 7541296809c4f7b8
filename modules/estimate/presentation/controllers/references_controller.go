package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/estimate/domain/reference"
	"github.com/stroyhub/backoffice/modules/estimate/services"
)

const referencesObjectCode = "references.dictionaries"

type ReferencesController struct {
	references *services.ReferenceService
}

func NewReferencesController(references *services.ReferenceService) *ReferencesController {
	return &ReferencesController{references: references}
}

func (c *ReferencesController) Key() string { return "/references" }

func (c *ReferencesController) Register(r *mux.Router) {
	read := r.PathPrefix("/references").Subrouter()
	read.Use(coremiddleware.RequireObject(referencesObjectCode, permission.ActionView))
	read.HandleFunc("/projects", c.projects).Methods(http.MethodGet)
	read.HandleFunc("/projects/{id}/blocks", c.blocks).Methods(http.MethodGet)
	read.HandleFunc("/projects/{id}/room-numbers", c.roomNumbers).Methods(http.MethodGet)
	read.HandleFunc("/locations", c.locations).Methods(http.MethodGet)
	read.HandleFunc("/rooms", c.rooms).Methods(http.MethodGet)
	read.HandleFunc("/documentation-tags", c.tags).Methods(http.MethodGet)
	read.HandleFunc("/materials", c.materials).Methods(http.MethodGet)
	read.HandleFunc("/units", c.units).Methods(http.MethodGet)
	read.HandleFunc("/nomenclature", c.nomenclature).Methods(http.MethodGet)
	read.HandleFunc("/nomenclature/{id}/suppliers", c.suppliers).Methods(http.MethodGet)

	create := r.PathPrefix("/references").Subrouter()
	create.Use(coremiddleware.RequireObject(referencesObjectCode, permission.ActionCreate))
	create.HandleFunc("/rooms", c.createRoom).Methods(http.MethodPost)
	create.HandleFunc("/projects/{id}/room-numbers", c.getOrCreateRoomNumber).Methods(http.MethodPost)
	create.HandleFunc("/materials", c.createMaterial).Methods(http.MethodPost)
	create.HandleFunc("/documentation-tags", c.createTag).Methods(http.MethodPost)

	edit := r.PathPrefix("/references").Subrouter()
	edit.Use(coremiddleware.RequireObject(referencesObjectCode, permission.ActionEdit))
	edit.HandleFunc("/documentation-tags/{id}", c.updateTag).Methods(http.MethodPut)

	del := r.PathPrefix("/references").Subrouter()
	del.Use(coremiddleware.RequireObject(referencesObjectCode, permission.ActionDelete))
	del.HandleFunc("/documentation-tags/{id}", c.deleteTag).Methods(http.MethodDelete)
}

func (c *ReferencesController) projects(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) blocks(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := c.references.GetBlocks(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) locations(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetLocations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) rooms(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetRooms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type nameDTO struct {
	Name string `json:"name" validate:"required"`
}

func (c *ReferencesController) createRoom(w http.ResponseWriter, r *http.Request) {
	var dto nameDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.references.CreateRoom(r.Context(), dto.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *ReferencesController) roomNumbers(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := c.references.GetRoomNumbers(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) getOrCreateRoomNumber(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto nameDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := c.references.GetOrCreateRoomNumber(r.Context(), id, dto.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *ReferencesController) tags(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetDocumentationTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type tagDTO struct {
	TagNumber int    `json:"tag_number" validate:"gte=0"`
	Name      string `json:"name" validate:"required"`
}

func (c *ReferencesController) createTag(w http.ResponseWriter, r *http.Request) {
	var dto tagDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.references.CreateDocumentationTag(r.Context(), reference.DocumentationTag{
		TagNumber: dto.TagNumber,
		Name:      dto.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *ReferencesController) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto tagDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := c.references.UpdateDocumentationTag(r.Context(), reference.DocumentationTag{
		ID:        id,
		TagNumber: dto.TagNumber,
		Name:      dto.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *ReferencesController) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.references.DeleteDocumentationTag(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ReferencesController) materials(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetMaterials(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) createMaterial(w http.ResponseWriter, r *http.Request) {
	var dto nameDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.references.CreateMaterial(r.Context(), dto.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *ReferencesController) units(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetUnits(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) nomenclature(w http.ResponseWriter, r *http.Request) {
	items, err := c.references.GetNomenclature(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *ReferencesController) suppliers(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := c.references.GetSuppliers(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
