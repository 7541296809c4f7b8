package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

const chessboardObjectCode = "documents.chessboard"

type ChessboardController struct {
	chessboard *services.ChessboardService
	importer   *services.ImportService
	exporter   *services.ExportService
}

func NewChessboardController(
	chessboardSvc *services.ChessboardService,
	importer *services.ImportService,
	exporter *services.ExportService,
) *ChessboardController {
	return &ChessboardController{chessboard: chessboardSvc, importer: importer, exporter: exporter}
}

func (c *ChessboardController) Key() string { return "/chessboard" }

func (c *ChessboardController) Register(r *mux.Router) {
	read := r.PathPrefix("/chessboard").Subrouter()
	read.Use(coremiddleware.RequireObject(chessboardObjectCode, permission.ActionView))
	read.HandleFunc("/sets", c.listSets).Methods(http.MethodGet)
	read.HandleFunc("/sets/{id}", c.getSet).Methods(http.MethodGet)
	read.HandleFunc("/rows", c.listRows).Methods(http.MethodGet)
	read.HandleFunc("/rows/{id}/floors", c.floorMappings).Methods(http.MethodGet)
	// Export rides on view permission.
	read.HandleFunc("/sets/{id}/export", c.exportSet).Methods(http.MethodGet)

	create := r.PathPrefix("/chessboard").Subrouter()
	create.Use(coremiddleware.RequireObject(chessboardObjectCode, permission.ActionCreate))
	create.HandleFunc("/rows", c.createRow).Methods(http.MethodPost)
	// Import rides on create permission.
	create.HandleFunc("/import", c.runImport).Methods(http.MethodPost)

	edit := r.PathPrefix("/chessboard").Subrouter()
	edit.Use(coremiddleware.RequireObject(chessboardObjectCode, permission.ActionEdit))
	edit.HandleFunc("/sets/{id}", c.updateSet).Methods(http.MethodPut)
	edit.HandleFunc("/rows/{id}/nomenclature", c.createNomenclatureMapping).Methods(http.MethodPost)

	del := r.PathPrefix("/chessboard").Subrouter()
	del.Use(coremiddleware.RequireObject(chessboardObjectCode, permission.ActionDelete))
	del.HandleFunc("/sets/{id}", c.deleteSet).Methods(http.MethodDelete)
	del.HandleFunc("/rows/{id}", c.deleteRow).Methods(http.MethodDelete)
}

func (c *ChessboardController) listSets(w http.ResponseWriter, r *http.Request) {
	sets, err := c.chessboard.GetSets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (c *ChessboardController) getSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	set, err := c.chessboard.GetSetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "chessboard set not found", ""))
		return
	}
	writeJSON(w, http.StatusOK, set)
}

type updateSetDTO struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"required"`
}

func (c *ChessboardController) updateSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto updateSetDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	existing, err := c.chessboard.GetSetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "chessboard set not found", ""))
		return
	}
	existing.Name = dto.Name
	existing.Status = dto.Status
	updated, err := c.chessboard.UpdateSet(r.Context(), existing)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *ChessboardController) deleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.chessboard.DeleteSet(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ChessboardController) listRows(w http.ResponseWriter, r *http.Request) {
	var filter chessboard.RowFilter
	var err error
	if filter.SetID, err = queryUUID(r, "set_id"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.CostCategoryID, err = queryUUID(r, "cost_category_id"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.DetailCostCategoryID, err = queryUUID(r, "detail_cost_category_id"); err != nil {
		writeError(w, r, err)
		return
	}
	filter.Search = r.URL.Query().Get("search")

	rows, err := c.chessboard.GetRows(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRowResponses(rows))
}

type createRowDTO struct {
	SetID                string  `json:"set_id" validate:"required,uuid"`
	MaterialID           string  `json:"material_id" validate:"required,uuid"`
	UnitID               string  `json:"unit_id" validate:"required,uuid"`
	PieTypeID            *string `json:"pie_type_id" validate:"omitempty,uuid"`
	QuantityPd           string  `json:"quantity_pd"`
	QuantitySpec         string  `json:"quantity_spec"`
	QuantityRd           string  `json:"quantity_rd"`
	CostCategoryID       *string `json:"cost_category_id" validate:"omitempty,uuid"`
	DetailCostCategoryID *string `json:"detail_cost_category_id" validate:"omitempty,uuid"`
	LocationID           *string `json:"location_id" validate:"omitempty,uuid"`
	BlockID              *string `json:"block_id" validate:"omitempty,uuid"`
}

func (c *ChessboardController) createRow(w http.ResponseWriter, r *http.Request) {
	var dto createRowDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	row := chessboard.Row{
		SetID:        uuid.MustParse(dto.SetID),
		MaterialID:   uuid.MustParse(dto.MaterialID),
		UnitID:       uuid.MustParse(dto.UnitID),
		PieTypeID:    optionalUUID(dto.PieTypeID),
		QuantityPd:   chessboard.ParseQuantity(dto.QuantityPd),
		QuantitySpec: chessboard.ParseQuantity(dto.QuantitySpec),
		QuantityRd:   chessboard.ParseQuantity(dto.QuantityRd),
	}
	mapping := chessboard.Mapping{
		CostCategoryID:       optionalUUID(dto.CostCategoryID),
		DetailCostCategoryID: optionalUUID(dto.DetailCostCategoryID),
		LocationID:           optionalUUID(dto.LocationID),
		BlockID:              optionalUUID(dto.BlockID),
	}
	created, err := c.chessboard.CreateRow(r.Context(), row, mapping)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created.ID)
}

type nomenclatureMappingDTO struct {
	NomenclatureID string  `json:"nomenclature_id" validate:"required,uuid"`
	SupplierID     *string `json:"supplier_id" validate:"omitempty,uuid"`
}

func (c *ChessboardController) createNomenclatureMapping(w http.ResponseWriter, r *http.Request) {
	rowID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto nomenclatureMappingDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	mapping := chessboard.NomenclatureMapping{
		RowID:          rowID,
		NomenclatureID: uuid.MustParse(dto.NomenclatureID),
		SupplierID:     optionalUUID(dto.SupplierID),
	}
	if err := c.chessboard.CreateNomenclatureMapping(r.Context(), mapping); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (c *ChessboardController) deleteRow(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.chessboard.DeleteRow(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ChessboardController) floorMappings(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	mappings, err := c.chessboard.GetFloorMappings(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]floorMappingResponse, 0, len(mappings))
	for _, fm := range mappings {
		out = append(out, floorMappingResponse{
			FloorNumber:  fm.FloorNumber,
			QuantityPd:   quantityJSON(fm.QuantityPd),
			QuantitySpec: quantityJSON(fm.QuantitySpec),
			QuantityRd:   quantityJSON(fm.QuantityRd),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type importDTO struct {
	SourceDocumentID string `json:"source_document_id" validate:"required,uuid"`
	SetName          string `json:"set_name" validate:"required"`
}

func (c *ChessboardController) runImport(w http.ResponseWriter, r *http.Request) {
	var dto importDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	result := c.importer.Import(r.Context(), uuid.MustParse(dto.SourceDocumentID), dto.SetName)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (c *ChessboardController) exportSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, filename, err := c.exporter.ExportSet(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

type rowResponse struct {
	ID                     uuid.UUID  `json:"id"`
	SetID                  uuid.UUID  `json:"set_id"`
	MaterialID             uuid.UUID  `json:"material_id"`
	MaterialName           string     `json:"material_name"`
	UnitName               string     `json:"unit_name"`
	CostCategoryName       string     `json:"cost_category_name"`
	DetailCostCategoryName string     `json:"detail_cost_category_name"`
	LocationName           string     `json:"location_name"`
	BlockName              string     `json:"block_name"`
	PieTypeID              *uuid.UUID `json:"pie_type_id,omitempty"`
	QuantityPd             *string    `json:"quantity_pd"`
	QuantitySpec           *string    `json:"quantity_spec"`
	QuantityRd             *string    `json:"quantity_rd"`
}

type floorMappingResponse struct {
	FloorNumber  int     `json:"floor_number"`
	QuantityPd   *string `json:"quantity_pd"`
	QuantitySpec *string `json:"quantity_spec"`
	QuantityRd   *string `json:"quantity_rd"`
}

func toRowResponses(rows []chessboard.RowView) []rowResponse {
	out := make([]rowResponse, 0, len(rows))
	for _, rv := range rows {
		out = append(out, rowResponse{
			ID:                     rv.ID,
			SetID:                  rv.SetID,
			MaterialID:             rv.MaterialID,
			MaterialName:           rv.MaterialName,
			UnitName:               rv.UnitName,
			CostCategoryName:       rv.CostCategoryName,
			DetailCostCategoryName: rv.DetailCostCategoryName,
			LocationName:           rv.LocationName,
			BlockName:              rv.BlockName,
			PieTypeID:              rv.PieTypeID,
			QuantityPd:             quantityJSON(rv.QuantityPd),
			QuantitySpec:           quantityJSON(rv.QuantitySpec),
			QuantityRd:             quantityJSON(rv.QuantityRd),
		})
	}
	return out
}

// quantityJSON renders an absent quantity as JSON null, never as "0".
func quantityJSON(q chessboard.Quantity) *string {
	v := q.Nullable()
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func optionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id := uuid.MustParse(*raw)
	return &id
}
