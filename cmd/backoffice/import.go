package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	estimatepersistence "github.com/stroyhub/backoffice/modules/estimate/infrastructure/persistence"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/modules/finishing/domain/finishing"
	finishingpersistence "github.com/stroyhub/backoffice/modules/finishing/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/excel"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

// Workbook column layout: row number, pie type, material, unit,
// detail cost category, floors, quantity PD, quantity Spec, quantity RD.
const importColumns = 9

func importCmd() *cobra.Command {
	var (
		file      string
		sheet     string
		projectID string
		setName   string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Stage a finishing workbook and import it into a new chessboard set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := uuid.Parse(projectID)
			if err != nil {
				return errors.Wrap(err, "invalid --project")
			}
			return withPool(cmd.Context(), func(ctx context.Context, _ *pgxpool.Pool) error {
				return runImport(ctx, file, sheet, project, setName)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the finishing specification workbook (xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (defaults to the first sheet)")
	cmd.Flags().StringVar(&projectID, "project", "", "project id the document belongs to")
	cmd.Flags().StringVar(&setName, "set-name", "", "name for the new chessboard set")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("set-name")
	return cmd
}

func runImport(ctx context.Context, file, sheet string, projectID uuid.UUID, setName string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rows, err := excel.ReadSheet(f, sheet)
	if err != nil {
		return err
	}
	staged, err := stagedRowsFromSheet(rows)
	if err != nil {
		return err
	}

	finishingRepo := finishingpersistence.NewFinishingRepository()
	doc, err := finishingRepo.StageDocument(ctx, file, projectID, staged)
	if err != nil {
		return errors.Wrap(err, "failed to stage document")
	}

	importer := services.NewImportService(
		finishingRepo,
		estimatepersistence.NewChessboardRepository(),
		querycache.New(),
	)
	result := importer.Import(ctx, doc.ID, setName)

	report, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(report))
	if !result.Success {
		return errors.New("import failed")
	}
	return nil
}

// stagedRowsFromSheet maps workbook rows to staged rows. The first row
// is a header and is skipped; completely empty rows are ignored.
func stagedRowsFromSheet(rows [][]string) ([]finishing.StagedRow, error) {
	if len(rows) < 2 {
		return nil, errors.New("workbook has no data rows")
	}
	var out []finishing.StagedRow
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		cells := make([]string, importColumns)
		copy(cells, row)
		rowNumber, err := strconv.Atoi(cells[0])
		if err != nil {
			rowNumber = i + 1
		}
		out = append(out, finishing.StagedRow{
			RowNumber:              rowNumber,
			PieTypeName:            cells[1],
			MaterialName:           cells[2],
			UnitName:               cells[3],
			DetailCostCategoryName: cells[4],
			Floors:                 cells[5],
			QuantityPd:             cells[6],
			QuantitySpec:           cells[7],
			QuantityRd:             cells[8],
		})
	}
	if len(out) == 0 {
		return nil, errors.New("workbook has no data rows")
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
