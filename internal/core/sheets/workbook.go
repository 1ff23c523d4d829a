package sheets

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"
)

// WorkbookSource lê as abas de uma cópia local da planilha (.xlsx ou .xls),
// devolvendo números no formato brasileiro e datas como dd/mm/aaaa, como a
// exportação CSV publicada.
type WorkbookSource struct {
	path string
}

var _ Source = (*WorkbookSource)(nil)

// NewWorkbookSource cria uma fonte sobre o arquivo informado.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

func (w *WorkbookSource) ReadSheet(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(w.path)); ext {
	case ".xlsx", ".xlsm":
		return w.readXLSX(sheet)
	case ".xls":
		return w.readXLS(sheet)
	default:
		return nil, fmt.Errorf("formato de planilha não suportado: %s", ext)
	}
}

func (w *WorkbookSource) readXLSX(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha .xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %q: %w", sheet, err)
	}

	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			rows[r][c] = localizeXLSXCell(f, sheet, cell, value)
		}
	}
	return rows, nil
}

// localizeXLSXCell só reinterpreta células numéricas; textos seguem como foram digitados.
func localizeXLSXCell(f *excelize.File, sheet, cell, value string) string {
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil || (cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset) {
		return value
	}
	numFmt, custom := cellNumFmt(f, sheet, cell)
	if isDateFormat(numFmt, custom) {
		serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return value
		}
		date, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return value
		}
		return date.Format("02/01/2006")
	}
	return localizeNumber(value, isPercentFormat(numFmt, custom))
}

func (w *WorkbookSource) readXLS(sheet string) ([][]string, error) {
	workbook, err := xls.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha .xls: %w", err)
	}

	for i := 0; i < workbook.GetNumberSheets(); i++ {
		s, err := workbook.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
		}
		if strings.TrimSpace(s.GetName()) != sheet {
			continue
		}

		var allRows [][]string
		for _, row := range s.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, localizeXLSCell(cell))
			}
			allRows = append(allRows, cells)
		}
		return allRows, nil
	}
	return nil, fmt.Errorf("aba %q não encontrada no arquivo .xls", sheet)
}

// localizeXLSCell só reinterpreta registros numéricos (Number e RK); rótulos passam intactos.
func localizeXLSCell(cell structure.CellData) string {
	switch cell.GetType() {
	case "*record.Number", "*record.Rk":
		return localizeNumber(cell.GetString(), false)
	default:
		return cell.GetString()
	}
}

// cellNumFmt devolve o formato numérico embutido e o personalizado da célula.
func cellNumFmt(f *excelize.File, sheet, cell string) (int, string) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return 0, ""
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return 0, ""
	}
	if style.CustomNumFmt != nil {
		return style.NumFmt, *style.CustomNumFmt
	}
	return style.NumFmt, ""
}

func isPercentFormat(numFmt int, custom string) bool {
	return numFmt == 9 || numFmt == 10 || strings.Contains(custom, "%")
}

// isDateFormat reconhece os formatos embutidos de data (14 a 22) e os personalizados
// com dia ou ano, como "dd/mm/yyyy".
func isDateFormat(numFmt int, custom string) bool {
	if numFmt >= 14 && numFmt <= 22 {
		return true
	}
	custom = strings.ToLower(custom)
	return strings.Contains(custom, "yy") || strings.Contains(custom, "dd")
}

// localizeNumber converte um valor bruto ("1234.5", "0.015") para a grafia brasileira
// ("1234,5", "1,5%"). Textos são devolvidos sem alteração.
func localizeNumber(raw string, percent bool) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw
	}
	if percent {
		f = math.Round(f*100*1e10) / 1e10
	}
	s := strings.Replace(strconv.FormatFloat(f, 'f', -1, 64), ".", ",", 1)
	if percent {
		s += "%"
	}
	return s
}
