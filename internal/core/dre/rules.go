// package dre/rules.go
package dre

import (
	"fmt"
	"strconv"
	"strings"

	"dre-service/internal/domain"
)

// Limites mínimos de subordinação, em pontos percentuais.
const (
	MezzanineSubordinationFloor = 20.0
	SeniorSubordinationFloor    = 40.0
)

// placeholder temporário usado na troca de separadores
const separatorPlaceholder = "X"

// --- Formatação ---

// FormatValue formata o valor de acordo com a coluna: percentual ("1,50%") ou
// moeda ("R$ 1.234.567,89").
func FormatValue(column string, value float64) string {
	return FormatKind(ColumnKindOf(column), value)
}

// FormatKind formata o valor para um identificador de coluna já resolvido.
func FormatKind(kind domain.ColumnKind, value float64) string {
	if kind.IsPercentage() {
		return strings.ReplaceAll(fmt.Sprintf("%.2f%%", value), ".", ",")
	}
	return "R$ " + toBrazilianSeparators(groupThousands(value))
}

// groupThousands escreve o valor com duas casas, vírgula como separador de milhar
// e ponto decimal ("1,234,567.89").
func groupThousands(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, decPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + decPart
}

// toBrazilianSeparators troca vírgula e ponto em três passos. Substituir direto
// "," por "." e depois "." por "," apagaria a distinção entre os dois.
func toBrazilianSeparators(s string) string {
	s = strings.ReplaceAll(s, ",", separatorPlaceholder)
	s = strings.ReplaceAll(s, ".", ",")
	return strings.ReplaceAll(s, separatorPlaceholder, ".")
}

// --- Classificação ---

// ClassifyCard define a cor do cartão. A primeira regra que casar vale.
func ClassifyCard(column string, value float64) domain.CardClass {
	return ClassifyKind(ColumnKindOf(column), value)
}

// ClassifyKind aplica as regras de ClassifyCard a um identificador já resolvido.
func ClassifyKind(kind domain.ColumnKind, value float64) domain.CardClass {
	switch {
	case kind.HasConditionalColor():
		if value > 0 {
			return domain.CardPositive
		}
		return domain.CardNegative
	case kind == domain.KindMezzanineSubordination && value < MezzanineSubordinationFloor:
		return domain.CardBelowThreshold
	case kind == domain.KindSeniorSubordination && value < SeniorSubordinationFloor:
		return domain.CardBelowThreshold
	}
	return domain.CardNormal
}

// ClassifyRow destaca as linhas de resumo da tabela original.
func ClassifyRow(firstCell string) domain.RowKind {
	if SummaryLineOf(firstCell) != domain.LineNone {
		return domain.RowHighlighted
	}
	return domain.RowNormal
}

// BuildCards monta um cartão por coluna numérica, na ordem das colunas.
func BuildCards(columns []string, row domain.NormalizedRow) []domain.Card {
	cards := make([]domain.Card, 0, len(columns))
	for _, column := range columns {
		value := row.Values[column]
		kind := ColumnKindOf(column)
		cards = append(cards, domain.Card{
			Column:  column,
			Kind:    kind,
			Value:   value,
			Display: FormatKind(kind, value),
			Class:   ClassifyKind(kind, value),
		})
	}
	return cards
}
