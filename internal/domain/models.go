// package domain/models.go
package domain

import (
	"fmt"
	"time"
)

// --- Fundos e abas ---

// Fund identifica um dos fundos acompanhados pelo painel.
type Fund string

// Fundos suportados.
const (
	FundApuama  Fund = "Apuama"
	FundBristol Fund = "Bristol"
)

// Funds lista os fundos na ordem exibida no seletor.
var Funds = []Fund{FundApuama, FundBristol}

// SheetPair guarda as duas abas de um fundo: a limpa (histórico) e a original (DRE completa).
type SheetPair struct {
	Clean    string
	Original string
}

// --- Tabelas ---

// RawTable é uma tabela de strings como veio da planilha.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// DatedRow é uma linha da aba limpa cuja coluna de data já foi interpretada.
type DatedRow struct {
	Line  int
	Date  time.Time
	Cells []string
}

// DatedTable é a aba limpa depois de remover colunas sem nome, descartar datas
// inválidas e ordenar por data. Header não inclui a coluna de data.
type DatedTable struct {
	DateColumn string
	Header     []string
	Rows       []DatedRow
}

// NormalizedRow é uma linha do histórico com todos os valores numéricos convertidos.
type NormalizedRow struct {
	Line   int                `json:"line"`
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// History é o histórico completo de um fundo, em ordem crescente de data.
type History struct {
	Columns []string            `json:"columns"`
	Rows    []NormalizedRow     `json:"rows"`
	Skipped []MalformedRowError `json:"-"`
}

// --- Classificações ---

// ColumnKind é o identificador estável de uma coluna com regra de apresentação própria.
// Colunas sem regra especial são KindCurrency.
type ColumnKind int

const (
	KindCurrency ColumnKind = iota
	KindDailyYield
	KindMonthlyYield
	KindMezzanineSubordination
	KindSeniorSubordination
)

// IsPercentage indica se a coluna é exibida como percentual.
func (k ColumnKind) IsPercentage() bool {
	switch k {
	case KindDailyYield, KindMonthlyYield, KindMezzanineSubordination, KindSeniorSubordination:
		return true
	}
	return false
}

// HasConditionalColor indica se o cartão muda de cor conforme o sinal do valor.
func (k ColumnKind) HasConditionalColor() bool {
	return k == KindDailyYield || k == KindMonthlyYield
}

func (k ColumnKind) String() string {
	switch k {
	case KindDailyYield:
		return "daily_yield"
	case KindMonthlyYield:
		return "monthly_yield"
	case KindMezzanineSubordination:
		return "mezzanine_subordination"
	case KindSeniorSubordination:
		return "senior_subordination"
	}
	return "currency"
}

// CardClass define a cor de um cartão de indicador.
type CardClass int

const (
	CardNormal CardClass = iota
	CardPositive
	CardNegative
	CardBelowThreshold
)

// MarshalText serializa a classe pelo nome usado nas classes CSS.
func (c CardClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText aceita os nomes produzidos por MarshalText.
func (c *CardClass) UnmarshalText(text []byte) error {
	for _, candidate := range []CardClass{CardNormal, CardPositive, CardNegative, CardBelowThreshold} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("classe de cartão desconhecida: %q", text)
}

func (c CardClass) String() string {
	switch c {
	case CardPositive:
		return "positive"
	case CardNegative:
		return "negative"
	case CardBelowThreshold:
		return "below_threshold"
	}
	return "normal"
}

// SummaryLine identifica uma linha de resumo da DRE original.
type SummaryLine int

const (
	LineNone SummaryLine = iota
	LineInitialJuniorEquity
	LineQuotaQuantity
	LineQuotaValue
	LineAssets
	LineCreditRights
	LineSuperiorQuotas
	LineAmountsToSettle
	LineCreditRightsAllowance
	LineResult
	LineTotalEquity
	LineDailyYield
	LineMonthlyYield
)

// RowKind define o destaque de uma linha da tabela original.
type RowKind int

const (
	RowNormal RowKind = iota
	RowHighlighted
	RowSeparator
)

func (r RowKind) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RowKind) UnmarshalText(text []byte) error {
	for _, candidate := range []RowKind{RowNormal, RowHighlighted, RowSeparator} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("tipo de linha desconhecido: %q", text)
}

func (r RowKind) String() string {
	switch r {
	case RowHighlighted:
		return "highlighted"
	case RowSeparator:
		return "separator"
	}
	return "normal"
}

// --- Saída do painel ---

// Card é um cartão de indicador já formatado.
type Card struct {
	Column  string     `json:"column"`
	Kind    ColumnKind `json:"-"`
	Value   float64    `json:"value"`
	Display string     `json:"display"`
	Class   CardClass  `json:"class"`
}

// OriginalRow é uma linha da tabela original com sua classificação.
type OriginalRow struct {
	Cells []string `json:"cells"`
	Kind  RowKind  `json:"kind"`
}

// OriginalTable é a DRE completa no layout da planilha.
type OriginalTable struct {
	Header []string      `json:"header"`
	Rows   []OriginalRow `json:"rows"`
}

// ColumnSummary resume uma coluna do histórico no período carregado.
type ColumnSummary struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// Report reúne tudo o que é lido da planilha para um fundo em um ciclo.
type Report struct {
	Fund     Fund          `json:"fund"`
	History  History       `json:"history"`
	Original OriginalTable `json:"original"`
}

// Dashboard é o modelo de uma renderização do painel.
type Dashboard struct {
	Fund     Fund            `json:"fund"`
	Date     time.Time       `json:"date"`
	MinDate  time.Time       `json:"min_date"`
	MaxDate  time.Time       `json:"max_date"`
	NoData   bool            `json:"no_data"`
	Cards    []Card          `json:"cards"`
	History  History         `json:"history"`
	Summary  []ColumnSummary `json:"summary"`
	Original OriginalTable   `json:"original"`
	Skipped  int             `json:"skipped_rows"`
}
