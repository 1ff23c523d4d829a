// package dre/summary.go
package dre

import (
	"fmt"

	"dre-service/internal/domain"

	"github.com/montanaflynn/stats"
)

// Summarize calcula mínimo, média e máximo de cada coluna no período carregado.
// Um histórico vazio não gera resumo.
func Summarize(history domain.History) ([]domain.ColumnSummary, error) {
	if len(history.Rows) == 0 {
		return nil, nil
	}

	summaries := make([]domain.ColumnSummary, 0, len(history.Columns))
	for _, column := range history.Columns {
		data := make(stats.Float64Data, 0, len(history.Rows))
		for _, row := range history.Rows {
			data = append(data, row.Values[column])
		}

		minimum, err := data.Min()
		if err != nil {
			return nil, fmt.Errorf("falha ao calcular mínimo de %q: %w", column, err)
		}
		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("falha ao calcular média de %q: %w", column, err)
		}
		maximum, err := data.Max()
		if err != nil {
			return nil, fmt.Errorf("falha ao calcular máximo de %q: %w", column, err)
		}
		summaries = append(summaries, domain.ColumnSummary{Column: column, Min: minimum, Mean: mean, Max: maximum})
	}
	return summaries, nil
}
