package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

// DataSource supplies tabular data for export.
type DataSource interface {
	SheetName() string
	Headers() []string
	Rows(ctx context.Context) ([][]any, error)
}

// PgxDataSource runs a SQL query and exposes its result set as a
// DataSource. Column names become headers.
type PgxDataSource struct {
	pool      *pgxpool.Pool
	query     string
	args      []any
	sheetName string
	headers   []string
}

func NewPgxDataSource(pool *pgxpool.Pool, query string, args ...any) *PgxDataSource {
	return &PgxDataSource{pool: pool, query: query, args: args, sheetName: "Sheet1"}
}

func (d *PgxDataSource) WithSheetName(name string) *PgxDataSource {
	// Excel caps sheet names at 31 characters.
	if len(name) > 31 {
		name = name[:31]
	}
	d.sheetName = name
	return d
}

func (d *PgxDataSource) SheetName() string { return d.sheetName }

func (d *PgxDataSource) Headers() []string { return d.headers }

func (d *PgxDataSource) Rows(ctx context.Context) ([][]any, error) {
	rows, err := d.pool.Query(ctx, d.query, d.args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run export query")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	d.headers = make([]string, len(fields))
	for i, f := range fields {
		d.headers[i] = f.Name
	}

	var out [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read export row")
		}
		out = append(out, values)
	}
	return out, rows.Err()
}

// SliceDataSource exports pre-assembled rows.
type SliceDataSource struct {
	Sheet   string
	Columns []string
	Data    [][]any
}

func (d *SliceDataSource) SheetName() string { return d.Sheet }
func (d *SliceDataSource) Headers() []string { return d.Columns }
func (d *SliceDataSource) Rows(ctx context.Context) ([][]any, error) {
	return d.Data, nil
}

type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

// Export renders the data source into xlsx bytes: bold header row, one
// data row per record.
func (e *Exporter) Export(ctx context.Context, ds DataSource) ([]byte, error) {
	data, err := ds.Rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := ds.SheetName()
	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create header style")
	}
	for i, h := range ds.Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range data {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}
