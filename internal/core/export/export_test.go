package export

import (
	"bytes"
	"io"
	"testing"
	"time"

	"dre-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func sampleHistory() domain.History {
	return domain.History{
		Columns: []string{"Ativos", "Rentabilidade Dia"},
		Rows: []domain.NormalizedRow{
			{Line: 2, Date: time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"Ativos": 1234.5, "Rentabilidade Dia": 0.15}},
			{Line: 3, Date: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"Ativos": -10, "Rentabilidade Dia": -1.25}},
		},
	}
}

func kindOf(column string) domain.ColumnKind {
	if column == "Rentabilidade Dia" {
		return domain.KindDailyYield
	}
	return domain.KindCurrency
}

func TestCSVUsesSemicolonAndWindows1252(t *testing.T) {
	out, err := CSV(sampleHistory())
	require.NoError(t, err)

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(out), charmap.Windows1252.NewDecoder()))
	require.NoError(t, err)
	assert.Equal(t,
		"Data;Ativos;Rentabilidade Dia\n02/01/2025;1234,50;0,15\n03/01/2025;-10,00;-1,25\n",
		string(decoded))
}

func TestCSVEncodesAccents(t *testing.T) {
	history := domain.History{Columns: []string{"Subordinação"}}

	out, err := CSV(history)

	require.NoError(t, err)
	assert.Contains(t, string(out), "Subordina\xe7\xe3o")
}

func TestSanitizeForCSV(t *testing.T) {
	assert.Equal(t, "Total do Patrimônio", sanitizeForCSV("  Total do\n Patrimônio\t"))
	assert.Equal(t, "a b", sanitizeForCSV("a\x01b"))
}

func TestXLSX(t *testing.T) {
	original := domain.OriginalTable{
		Header: []string{"", "jan/25"},
		Rows: []domain.OriginalRow{
			{Cells: []string{"", ""}, Kind: domain.RowSeparator},
			{Cells: []string{"ATIVOS", "1.000,00"}, Kind: domain.RowHighlighted},
			{Cells: []string{"linha", "2,00"}, Kind: domain.RowNormal},
		},
	}

	out, err := XLSX(sampleHistory(), original, kindOf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{HistorySheet, OriginalSheet}, f.GetSheetList())

	header, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, header, 3)
	assert.Equal(t, []string{"Data", "Ativos", "Rentabilidade Dia"}, header[0])

	raw, err := f.GetCellValue(HistorySheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.5", raw)

	rows, err := f.GetRows(OriginalSheet)
	require.NoError(t, err)
	assert.Equal(t, "ATIVOS", rows[2][0])

	highlighted, err := f.GetCellStyle(OriginalSheet, "A3")
	require.NoError(t, err)
	normal, err := f.GetCellStyle(OriginalSheet, "A4")
	require.NoError(t, err)
	assert.NotEqual(t, normal, highlighted)
}
