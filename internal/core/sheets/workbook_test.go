package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Dre_Apuama")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Dre_Apuama", "A1", &[]interface{}{"Data", "Ativos", "Rentabilidade Dia"}))
	require.NoError(t, f.SetSheetRow("Dre_Apuama", "A2", &[]interface{}{"02/01/2025", 1234567.89, 0.015}))

	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Dre_Apuama", "C2", "C2", percent))

	path := filepath.Join(t.TempDir(), "dre.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookSourceReadsXLSXInBrazilianFormat(t *testing.T) {
	source := NewWorkbookSource(writeWorkbook(t))

	rows, err := source.ReadSheet(context.Background(), "Dre_Apuama")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Data", "Ativos", "Rentabilidade Dia"}, rows[0])
	assert.Equal(t, []string{"02/01/2025", "1234567,89", "1,5%"}, rows[1])
}

func TestWorkbookSourceKeepsTextCellsAndConvertsDateSerials(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Dre_Bristol")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Dre_Bristol", "A1", &[]interface{}{"Data", "Ativos", "Cotas"}))
	require.NoError(t, f.SetSheetRow("Dre_Bristol", "A2", &[]interface{}{45659, "1.000", 1000}))
	require.NoError(t, f.SetSheetRow("Dre_Bristol", "A3", &[]interface{}{"03/01/2025", "0.015", 45000}))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Dre_Bristol", "A2", "A2", dateStyle))

	path := filepath.Join(t.TempDir(), "dre.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := NewWorkbookSource(path).ReadSheet(context.Background(), "Dre_Bristol")

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"02/01/2025", "1.000", "1000"}, rows[1])
	// serial sem formato de data continua sendo número
	assert.Equal(t, []string{"03/01/2025", "0.015", "45000"}, rows[2])
}

func TestIsDateFormat(t *testing.T) {
	assert.True(t, isDateFormat(14, ""))
	assert.True(t, isDateFormat(22, ""))
	assert.True(t, isDateFormat(0, "dd/mm/yyyy"))
	assert.False(t, isDateFormat(10, ""))
	assert.False(t, isDateFormat(0, "#,##0.00"))
}

func TestWorkbookSourceUnknownSheet(t *testing.T) {
	source := NewWorkbookSource(writeWorkbook(t))

	_, err := source.ReadSheet(context.Background(), "Dre_Bristol")

	assert.Error(t, err)
}

func TestWorkbookSourceRejectsUnknownExtension(t *testing.T) {
	_, err := NewWorkbookSource("dre.ods").ReadSheet(context.Background(), "Dre_Apuama")

	assert.Error(t, err)
}

func TestLocalizeNumber(t *testing.T) {
	assert.Equal(t, "1234,5", localizeNumber("1234.5", false))
	assert.Equal(t, "-0,25", localizeNumber("-0.25", false))
	assert.Equal(t, "45,1%", localizeNumber("0.451", true))
	assert.Equal(t, "PL JR INICIAL", localizeNumber("PL JR INICIAL", false))
}
