package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/excel"
)

// Column aliases become workbook headers. Quantities are cast so NULL
// reaches the exporter as nil and renders blank, never 0.
const setExportQuery = `
        SELECT
            COALESCE(m.name, '') AS "Material",
            COALESCE(u.name, '') AS "Unit",
            COALESCE(cc.name, '') AS "Cost category",
            COALESCE(dcc.name, '') AS "Detail cost category",
            COALESCE(l.name, '') AS "Location",
            COALESCE(b.name, '') AS "Block",
            cb.quantity_pd::float8 AS "Quantity PD",
            cb.quantity_spec::float8 AS "Quantity Spec",
            cb.quantity_rd::float8 AS "Quantity RD"
        FROM chessboard cb
        LEFT JOIN materials m ON m.id = cb.material_id
        LEFT JOIN units u ON u.id = cb.unit_id
        LEFT JOIN chessboard_mapping cm ON cm.chessboard_id = cb.id
        LEFT JOIN cost_categories cc ON cc.id = cm.cost_category_id
        LEFT JOIN detail_cost_categories dcc ON dcc.id = cm.detail_cost_category_id
        LEFT JOIN locations l ON l.id = cm.location_id
        LEFT JOIN blocks b ON b.id = cm.block_id
        WHERE cb.set_id = $1
        ORDER BY cb.created_at, cb.id`

// ExportService renders a chessboard set into an xlsx workbook.
type ExportService struct {
	chessboard *ChessboardService
	exporter   *excel.Exporter
}

func NewExportService(chessboardSvc *ChessboardService) *ExportService {
	return &ExportService{chessboard: chessboardSvc, exporter: excel.NewExporter()}
}

func (s *ExportService) ExportSet(ctx context.Context, setID uuid.UUID) ([]byte, string, error) {
	set, err := s.chessboard.GetSetByID(ctx, setID)
	if err != nil {
		return nil, "", err
	}
	pool, err := composables.UsePool(ctx)
	if err != nil {
		return nil, "", err
	}

	ds := excel.NewPgxDataSource(pool, setExportQuery, setID).WithSheetName(set.Name)
	payload, err := s.exporter.Export(ctx, ds)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("chessboard-set-%d.xlsx", set.SetNumber)
	return payload, filename, nil
}
