package excel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/pkg/excel"
)

func TestExportRoundTripsThroughReader(t *testing.T) {
	ds := &excel.SliceDataSource{
		Sheet:   "Rows",
		Columns: []string{"Material", "Quantity PD"},
		Data: [][]any{
			{"Plaster", 16.5},
			{"Paint", nil},
		},
	}
	payload, err := excel.NewExporter().Export(context.Background(), ds)
	require.NoError(t, err)

	rows, err := excel.ReadSheet(bytes.NewReader(payload), "Rows")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Material", "Quantity PD"}, rows[0])
	require.Equal(t, []string{"Plaster", "16.5"}, rows[1])
	// Trailing empty cells are trimmed on read, so the nil quantity
	// leaves only the name: absent values never render as 0.
	require.Equal(t, []string{"Paint"}, rows[2])
}
