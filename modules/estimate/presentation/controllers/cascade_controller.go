package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/estimate/domain/costing"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

// CascadeController serves the dependent-selector chain. Each level's
// options are a function of the parent id the client passes; while the
// parent is absent the level reports itself disabled and no query runs.
type CascadeController struct {
	resolver *services.CascadeResolver
}

func NewCascadeController(resolver *services.CascadeResolver) *CascadeController {
	return &CascadeController{resolver: resolver}
}

func (c *CascadeController) Key() string { return "/cascade" }

func (c *CascadeController) Register(r *mux.Router) {
	sub := r.PathPrefix("/cascade").Subrouter()
	sub.Use(coremiddleware.RequireObject(chessboardObjectCode, permission.ActionView))
	sub.HandleFunc("/cost-categories", c.level(services.LevelCostCategory, "")).Methods(http.MethodGet)
	sub.HandleFunc("/detail-cost-categories", c.level(services.LevelDetailCostCategory, "cost_category_id")).Methods(http.MethodGet)
	sub.HandleFunc("/work-sets", c.level(services.LevelWorkSet, "detail_cost_category_id")).Methods(http.MethodGet)
	sub.HandleFunc("/rates", c.level(services.LevelRate, "work_set_id")).Methods(http.MethodGet)
}

type cascadeResponse struct {
	Enabled bool             `json:"enabled"`
	Options []costing.Option `json:"options"`
}

func (c *CascadeController) level(level services.CascadeLevel, parentParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id *uuid.UUID
		if parentParam != "" {
			var err error
			if id, err = queryUUID(r, parentParam); err != nil {
				writeError(w, r, serrors.NewError("INVALID_PAYLOAD", "invalid "+parentParam, ""))
				return
			}
		}
		options, enabled, err := c.resolver.OptionsFor(r.Context(), level, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if options == nil {
			options = []costing.Option{}
		}
		writeJSON(w, http.StatusOK, cascadeResponse{Enabled: enabled, Options: options})
	}
}
