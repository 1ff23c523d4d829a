// package export/xlsx.go
package export

import (
	"fmt"

	"dre-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Nomes das abas do arquivo exportado.
const (
	HistorySheet  = "Histórico"
	OriginalSheet = "DRE Original"
)

const (
	dateNumFmt     = "dd/mm/yyyy"
	currencyNumFmt = `"R$" #,##0.00`
	percentNumFmt  = `0.00"%"`
	highlightFill  = "4169E1"
)

// KindOf resolve o identificador de uma coluna do histórico.
type KindOf func(column string) domain.ColumnKind

// XLSX gera uma pasta de trabalho com o histórico tipado (datas, moeda e
// percentuais com formato numérico) e a DRE original com as linhas destacadas.
func XLSX(history domain.History, original domain.OriginalTable, kindOf KindOf) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, err
	}
	if err := writeHistory(f, history, kindOf); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba %q: %w", HistorySheet, err)
	}

	if _, err := f.NewSheet(OriginalSheet); err != nil {
		return nil, err
	}
	if err := writeOriginal(f, original); err != nil {
		return nil, fmt.Errorf("erro ao gerar aba %q: %w", OriginalSheet, err)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar planilha: %w", err)
	}
	return buffer.Bytes(), nil
}

func customStyle(f *excelize.File, numFmt string) (int, error) {
	return f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
}

func writeHistory(f *excelize.File, history domain.History, kindOf KindOf) error {
	dateStyle, err := customStyle(f, dateNumFmt)
	if err != nil {
		return err
	}
	currencyStyle, err := customStyle(f, currencyNumFmt)
	if err != nil {
		return err
	}
	percentStyle, err := customStyle(f, percentNumFmt)
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := append([]interface{}{"Data"}, toInterfaces(history.Columns)...)
	if err := f.SetSheetRow(HistorySheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(HistorySheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range history.Rows {
		line := i + 2
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(HistorySheet, cell, row.Date); err != nil {
			return err
		}
		if err := f.SetCellStyle(HistorySheet, cell, cell, dateStyle); err != nil {
			return err
		}

		for j, column := range history.Columns {
			cell, err := excelize.CoordinatesToCellName(j+2, line)
			if err != nil {
				return err
			}
			if err := f.SetCellFloat(HistorySheet, cell, row.Values[column], -1, 64); err != nil {
				return err
			}
			style := currencyStyle
			if kindOf(column).IsPercentage() {
				style = percentStyle
			}
			if err := f.SetCellStyle(HistorySheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOriginal(f *excelize.File, original domain.OriginalTable) error {
	highlightStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	header := toInterfaces(original.Header)
	if err := f.SetSheetRow(OriginalSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range original.Rows {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := toInterfaces(row.Cells)
		if err := f.SetSheetRow(OriginalSheet, start, &cells); err != nil {
			return err
		}
		if row.Kind != domain.RowHighlighted || len(row.Cells) == 0 {
			continue
		}
		end, err := excelize.CoordinatesToCellName(len(row.Cells), i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(OriginalSheet, start, end, highlightStyle); err != nil {
			return err
		}
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
