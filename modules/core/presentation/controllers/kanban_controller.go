package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

type KanbanController struct {
	kanban *services.KanbanService
}

func NewKanbanController(kanban *services.KanbanService) *KanbanController {
	return &KanbanController{kanban: kanban}
}

func (c *KanbanController) Key() string { return "/kanban-order" }

func (c *KanbanController) Register(r *mux.Router) {
	sub := r.PathPrefix("/kanban-order").Subrouter()
	sub.Handle("/{page}", coremiddleware.RequireAuthenticated(http.HandlerFunc(c.get))).Methods(http.MethodGet)
	sub.Handle("/{page}", coremiddleware.RequireAuthenticated(http.HandlerFunc(c.reorder))).Methods(http.MethodPut)
}

type reorderDTO struct {
	StatusIDs []uint `json:"status_ids" validate:"required"`
}

func (c *KanbanController) get(w http.ResponseWriter, r *http.Request) {
	page := mux.Vars(r)["page"]
	if page == "" {
		writeError(w, r, serrors.NewError("INVALID_PAYLOAD", "page is required", ""))
		return
	}
	items, err := c.kanban.GetForPage(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *KanbanController) reorder(w http.ResponseWriter, r *http.Request) {
	page := mux.Vars(r)["page"]
	var dto reorderDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.kanban.Reorder(r.Context(), page, dto.StatusIDs); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
