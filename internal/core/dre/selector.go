// package dre/selector.go
package dre

import (
	"fmt"
	"strings"
	"time"

	"dre-service/internal/domain"
)

var sheetPairs = map[domain.Fund]domain.SheetPair{
	domain.FundApuama:  {Clean: "Dre_Apuama", Original: "Dre_Apuama_Original"},
	domain.FundBristol: {Clean: "Dre_Bristol", Original: "Dre_Bristol_Original"},
}

// Resolve devolve as abas limpa e original do fundo. Qualquer rótulo fora da
// lista de fundos é erro de configuração.
func Resolve(label string) (domain.SheetPair, error) {
	pair, ok := sheetPairs[domain.Fund(strings.TrimSpace(label))]
	if !ok {
		return domain.SheetPair{}, fmt.Errorf("%w: %q", domain.ErrUnknownFund, label)
	}
	return pair, nil
}

// --- Filtro de data ---

// FilterByDate devolve as linhas do histórico cuja data é exatamente o dia informado.
func FilterByDate(rows []domain.NormalizedRow, day time.Time) []domain.NormalizedRow {
	day = truncateDay(day)
	var out []domain.NormalizedRow
	for _, row := range rows {
		if row.Date.Equal(day) {
			out = append(out, row)
		}
	}
	return out
}

// ClampDate limita o dia ao intervalo [first, last].
func ClampDate(day, first, last time.Time) time.Time {
	day = truncateDay(day)
	if day.Before(first) {
		return first
	}
	if day.After(last) {
		return last
	}
	return day
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
