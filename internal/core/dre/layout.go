// package dre/layout.go
package dre

import "dre-service/internal/domain"

// DefaultSeparatorSkipLast é quantas linhas de destaque, contadas do fim, não
// recebem a linha em branco antes delas. Mantém o visual da planilha publicada.
const DefaultSeparatorSkipLast = 3

// BuildOriginalLayout classifica as linhas da aba original e insere uma linha em
// branco antes de cada linha destacada, exceto as skipLast últimas. Se houver
// skipLast destaques ou menos, nenhuma linha em branco é inserida.
// Um skipLast negativo desliga a exceção.
func BuildOriginalLayout(raw domain.RawTable, skipLast int) domain.OriginalTable {
	var highlighted []int
	rows := make([]domain.OriginalRow, len(raw.Rows))
	for i, cells := range raw.Rows {
		first := ""
		if len(cells) > 0 {
			first = cells[0]
		}
		kind := ClassifyRow(first)
		if kind == domain.RowHighlighted {
			highlighted = append(highlighted, i)
		}
		rows[i] = domain.OriginalRow{Cells: cells, Kind: kind}
	}

	before := make(map[int]bool)
	for _, i := range separatorTargets(highlighted, skipLast) {
		before[i] = true
	}

	table := domain.OriginalTable{
		Header: raw.Header,
		Rows:   make([]domain.OriginalRow, 0, len(rows)+len(before)),
	}
	for i, row := range rows {
		if before[i] {
			table.Rows = append(table.Rows, domain.OriginalRow{
				Cells: make([]string, len(raw.Header)),
				Kind:  domain.RowSeparator,
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func separatorTargets(highlighted []int, skipLast int) []int {
	if skipLast < 0 {
		return highlighted
	}
	if len(highlighted) <= skipLast {
		return nil
	}
	return highlighted[:len(highlighted)-skipLast]
}

