package dre

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"dre-service/internal/domain"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// columnAliases liga os cabeçalhos conhecidos (planilha em português e nomes em
// inglês) ao identificador estável da coluna.
var columnAliases = map[string]domain.ColumnKind{
	"Rentabilidade Dia":       domain.KindDailyYield,
	"Daily Yield":             domain.KindDailyYield,
	"Rentabilidade Mês":       domain.KindMonthlyYield,
	"Monthly Yield":           domain.KindMonthlyYield,
	"Subordinação Mezanino":   domain.KindMezzanineSubordination,
	"Mezzanine Subordination": domain.KindMezzanineSubordination,
	"Subordinação Senior":     domain.KindSeniorSubordination,
	"Senior Subordination":    domain.KindSeniorSubordination,
}

// summaryLineAliases é o conjunto fixo de rótulos destacados na DRE original.
// A comparação é exata, após remover espaços nas pontas.
var summaryLineAliases = map[string]domain.SummaryLine{
	"PL JR INICIAL":                domain.LineInitialJuniorEquity,
	"Initial Junior Equity":        domain.LineInitialJuniorEquity,
	"QTD COTAS":                    domain.LineQuotaQuantity,
	"Quota Quantity":               domain.LineQuotaQuantity,
	"VALOR COTA":                   domain.LineQuotaValue,
	"Valor Cota":                   domain.LineQuotaValue,
	"Quota Value":                  domain.LineQuotaValue,
	"ATIVOS":                       domain.LineAssets,
	"Assets":                       domain.LineAssets,
	"DC":                           domain.LineCreditRights,
	"Credit Rights":                domain.LineCreditRights,
	"SUPERIORES":                   domain.LineSuperiorQuotas,
	"Superior Quotas":              domain.LineSuperiorQuotas,
	"Valores a Liquidar / Receber": domain.LineAmountsToSettle,
	"Amounts to Settle / Receive":  domain.LineAmountsToSettle,
	"PDD DC":                       domain.LineCreditRightsAllowance,
	"Credit Rights Allowance":      domain.LineCreditRightsAllowance,
	"Resultado":                    domain.LineResult,
	"Result":                       domain.LineResult,
	"Total do Patrimônio":          domain.LineTotalEquity,
	"Total Equity":                 domain.LineTotalEquity,
	"Rentabilidade Dia":            domain.LineDailyYield,
	"Daily Yield":                  domain.LineDailyYield,
	"Rentabilidade Mês":            domain.LineMonthlyYield,
	"Monthly Yield":                domain.LineMonthlyYield,
}

// ColumnKindOf devolve o identificador da coluna pelo cabeçalho. Cabeçalhos
// desconhecidos são tratados como valores monetários.
func ColumnKindOf(column string) domain.ColumnKind {
	return columnAliases[canonical(column)]
}

// SummaryLineOf devolve a linha de resumo correspondente à primeira célula.
func SummaryLineOf(firstCell string) domain.SummaryLine {
	return summaryLineAliases[canonical(firstCell)]
}

// canonical remove espaços nas pontas e recompõe acentos (NFC), sem alterar a grafia.
func canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeText remove acentos e pontuação e passa para maiúsculas.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

var (
	driftKeys    []string
	driftAliases = map[string]string{}
	// somente leitura depois do init; Closest pode ser chamado de várias goroutines
	driftMatcher *closestmatch.ClosestMatch
)

func init() {
	for alias := range columnAliases {
		key := normalizeText(alias)
		if _, ok := driftAliases[key]; !ok {
			driftKeys = append(driftKeys, key)
		}
		driftAliases[key] = alias
	}
	sort.Strings(driftKeys)
	driftMatcher = closestmatch.New(driftKeys, []int{2, 3})
}

// DetectDrift aponta cabeçalhos que parecem uma coluna percentual renomeada
// (acento, caixa ou uma palavra diferente) e por isso cairiam na regra monetária.
func DetectDrift(column string) (string, bool) {
	if _, ok := columnAliases[canonical(column)]; ok {
		return "", false
	}
	key := normalizeText(column)
	if key == "" {
		return "", false
	}
	if alias, ok := driftAliases[key]; ok {
		return alias, true
	}

	match := driftMatcher.Closest(key)
	if match == "" {
		return "", false
	}

	matchWords := strings.Fields(match)
	shared := 0
	for _, w := range strings.Fields(key) {
		for _, m := range matchWords {
			if w == m {
				shared++
				break
			}
		}
	}
	if len(matchWords) >= 2 && shared >= len(matchWords)-1 && shared > 0 {
		return driftAliases[match], true
	}
	return "", false
}
