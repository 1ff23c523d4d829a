// Package views guarda os templates HTML do painel.
package views

import (
	"embed"
	"html/template"
	"time"

	"dre-service/internal/core/dre"
	"dre-service/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Paleta do painel.
const (
	SpaceCadet  = "#272846"
	HarvestGold = "#e5a125"
	Honeydew    = "#f0f8ea"
	SlateGray   = "#717c89"
	Green       = "#a4f4b8"
	Red         = "#f4b4b4"
	Highlight   = "#4169E1"
)

// Load interpreta os templates embutidos.
func Load() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templatesFS, "templates/*.html")
}

// FuncMap expõe a formatação da DRE aos templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"brDate":      func(t time.Time) string { return t.Format("02/01/2006") },
		"isoDate":     func(t time.Time) string { return t.Format("2006-01-02") },
		"formatValue": dre.FormatValue,
		"cardColor":   CardColor,
		"cardRows":    CardRows,
		"palette":     func() map[string]string { return palette },
		"isSeparator": func(k domain.RowKind) bool { return k == domain.RowSeparator },
		"isHighlight": func(k domain.RowKind) bool { return k == domain.RowHighlighted },
	}
}

var palette = map[string]string{
	"SpaceCadet":  SpaceCadet,
	"HarvestGold": HarvestGold,
	"Honeydew":    Honeydew,
	"SlateGray":   SlateGray,
	"Green":       Green,
	"Red":         Red,
	"Highlight":   Highlight,
}

// CardColor devolve a cor de fundo do cartão.
func CardColor(class domain.CardClass) string {
	switch class {
	case domain.CardPositive:
		return Green
	case domain.CardNegative, domain.CardBelowThreshold:
		return Red
	}
	return Honeydew
}

// CardRows agrupa os cartões em linhas de perRow.
func CardRows(cards []domain.Card, perRow int) [][]domain.Card {
	if perRow <= 0 {
		perRow = 1
	}
	var rows [][]domain.Card
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, cards[i:end])
	}
	return rows
}
