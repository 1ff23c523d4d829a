// package dre/normalizer.go
package dre

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"dre-service/internal/domain"
)

var (
	errEmptyValue = errors.New("célula vazia")
	errNotANumber = errors.New("não numérico")
	errNotFinite  = errors.New("valor não finito")
)

// Normalize converte um número no formato brasileiro ("1.234,56", "12,3%") em float64.
// A ordem importa: remove os pontos de milhar, troca a vírgula decimal por ponto,
// retira o sinal de porcentagem e só então interpreta o número.
func Normalize(column, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, &domain.MalformedRowError{Column: column, Value: raw, Err: errEmptyValue}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &domain.MalformedRowError{Column: column, Value: raw, Err: errNotANumber}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.MalformedRowError{Column: column, Value: raw, Err: errNotFinite}
	}
	return v, nil
}

// NormalizeTable converte todas as colunas numéricas da aba limpa. Uma linha com
// qualquer célula inválida é excluída do histórico e registrada em Skipped.
func NormalizeTable(table domain.DatedTable) domain.History {
	history := domain.History{Columns: append([]string(nil), table.Header...)}

	for _, row := range table.Rows {
		values := make(map[string]float64, len(table.Header))
		var malformed *domain.MalformedRowError
		for i, column := range table.Header {
			v, err := Normalize(column, row.Cells[i])
			if err != nil {
				errors.As(err, &malformed)
				malformed.Line = row.Line
				break
			}
			values[column] = v
		}
		if malformed != nil {
			history.Skipped = append(history.Skipped, *malformed)
			continue
		}
		history.Rows = append(history.Rows, domain.NormalizedRow{Line: row.Line, Date: row.Date, Values: values})
	}
	return history
}
