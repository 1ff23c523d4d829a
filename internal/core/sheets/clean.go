package sheets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"dre-service/internal/domain"
)

// DefaultDateColumn é o nome da coluna de data na aba limpa.
const DefaultDateColumn = "Data"

var unnamedColumnRegex = regexp.MustCompile(`^(Unnamed.*)?$`)

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDayFirst interpreta uma data no formato brasileiro (dia antes do mês) ou em
// ISO. O horário é descartado. Números soltos não são datas.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dedupeHeader renomeia cabeçalhos repetidos para "X.1", "X.2"..., na ordem em que aparecem.
func dedupeHeader(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		candidate := name
		for taken[candidate] {
			seen[name]++
			candidate = fmt.Sprintf("%s.%d", name, seen[name])
		}
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

// Clean prepara a aba limpa: renomeia cabeçalhos repetidos, remove colunas sem nome,
// interpreta a coluna de data, descarta linhas com data inválida e ordena por data
// de forma estável.
// Devolve também quantas linhas foram descartadas.
func Clean(raw domain.RawTable, dateColumn string) (domain.DatedTable, int, error) {
	if dateColumn == "" {
		dateColumn = DefaultDateColumn
	}

	dateIdx := -1
	var keep []int
	var header []string
	for i, name := range dedupeHeader(raw.Header) {
		if unnamedColumnRegex.MatchString(name) {
			continue
		}
		if name == dateColumn && dateIdx < 0 {
			dateIdx = i
			continue
		}
		keep = append(keep, i)
		header = append(header, name)
	}
	if dateIdx < 0 {
		return domain.DatedTable{}, 0, fmt.Errorf("coluna de data %q não encontrada", dateColumn)
	}

	table := domain.DatedTable{DateColumn: dateColumn, Header: header}
	dropped := 0
	for i, row := range raw.Rows {
		if dateIdx >= len(row) {
			dropped++
			continue
		}
		date, ok := ParseDayFirst(row[dateIdx])
		if !ok {
			dropped++
			continue
		}
		cells := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(row) {
				cells[j] = row[idx]
			}
		}
		// linha 1 é o cabeçalho; dados começam na linha 2 da planilha
		table.Rows = append(table.Rows, domain.DatedRow{Line: i + 2, Date: date, Cells: cells})
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].Date.Before(table.Rows[j].Date)
	})
	return table, dropped, nil
}
