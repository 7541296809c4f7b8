package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/portalobject"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

const portalObjectsCode = "admin.portal_objects"

type PortalObjectsController struct {
	objects *services.PortalObjectService
}

func NewPortalObjectsController(objects *services.PortalObjectService) *PortalObjectsController {
	return &PortalObjectsController{objects: objects}
}

func (c *PortalObjectsController) Key() string { return "/portal-objects" }

func (c *PortalObjectsController) Register(r *mux.Router) {
	// The navigation tree is available to any signed-in user.
	r.Handle("/portal-objects/tree", coremiddleware.RequireAuthenticated(http.HandlerFunc(c.tree))).Methods(http.MethodGet)

	read := r.PathPrefix("/portal-objects").Subrouter()
	read.Use(coremiddleware.RequireObject(portalObjectsCode, permission.ActionView))
	read.HandleFunc("", c.list).Methods(http.MethodGet)

	create := r.PathPrefix("/portal-objects").Subrouter()
	create.Use(coremiddleware.RequireObject(portalObjectsCode, permission.ActionCreate))
	create.HandleFunc("", c.create).Methods(http.MethodPost)

	edit := r.PathPrefix("/portal-objects").Subrouter()
	edit.Use(coremiddleware.RequireObject(portalObjectsCode, permission.ActionEdit))
	edit.HandleFunc("/{id:[0-9]+}", c.update).Methods(http.MethodPut)

	del := r.PathPrefix("/portal-objects").Subrouter()
	del.Use(coremiddleware.RequireObject(portalObjectsCode, permission.ActionDelete))
	del.HandleFunc("/{id:[0-9]+}", c.delete).Methods(http.MethodDelete)
}

type portalObjectDTO struct {
	Name       string         `json:"name" validate:"required"`
	Code       string         `json:"code" validate:"required"`
	ObjectType string         `json:"object_type" validate:"required,oneof=page section feature action"`
	ParentID   *uint          `json:"parent_id"`
	SortOrder  int            `json:"sort_order"`
	IsVisible  bool           `json:"is_visible"`
	Metadata   map[string]any `json:"metadata"`
}

func (c *PortalObjectsController) tree(w http.ResponseWriter, r *http.Request) {
	forest, err := c.objects.Tree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forest)
}

func (c *PortalObjectsController) list(w http.ResponseWriter, r *http.Request) {
	items, err := c.objects.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *PortalObjectsController) create(w http.ResponseWriter, r *http.Request) {
	var dto portalObjectDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.objects.Create(r.Context(), portalobject.PortalObject{
		Name:       dto.Name,
		Code:       dto.Code,
		ObjectType: portalobject.ObjectType(dto.ObjectType),
		ParentID:   dto.ParentID,
		SortOrder:  dto.SortOrder,
		IsVisible:  dto.IsVisible,
		Metadata:   dto.Metadata,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *PortalObjectsController) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto portalObjectDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	existing, err := c.objects.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "portal object not found", ""))
		return
	}
	existing.Name = dto.Name
	existing.ObjectType = portalobject.ObjectType(dto.ObjectType)
	existing.ParentID = dto.ParentID
	existing.SortOrder = dto.SortOrder
	existing.IsVisible = dto.IsVisible
	existing.Metadata = dto.Metadata
	updated, err := c.objects.Update(r.Context(), existing)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *PortalObjectsController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.objects.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
