// Package sheets lê as abas da DRE, seja da exportação CSV publicada do Google
// Sheets ou de uma cópia local da planilha.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dre-service/internal/domain"
)

var errEmptySheet = errors.New("aba sem linhas")

// Source devolve as células de uma aba, linha a linha, sem interpretar cabeçalho.
type Source interface {
	ReadSheet(ctx context.Context, sheet string) ([][]string, error)
}

// Fetcher aplica as duas leituras da DRE sobre uma Source.
type Fetcher struct {
	source Source
}

// NewFetcher cria um Fetcher sobre a fonte informada.
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch lê uma aba cuja primeira linha é o cabeçalho. Colunas sem nome recebem
// o nome "Unnamed: <índice>" para que Clean possa descartá-las.
func (f *Fetcher) Fetch(ctx context.Context, sheet string) (domain.RawTable, error) {
	rows, err := f.read(ctx, sheet)
	if err != nil {
		return domain.RawTable{}, err
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = name
	}

	return domain.RawTable{Header: header, Rows: padRows(rows[1:], len(header))}, nil
}

// FetchOriginal lê uma aba sem cabeçalho nativo: a primeira linha de dados vira o
// cabeçalho literal e o restante é o corpo, reindexado a partir de zero.
func (f *Fetcher) FetchOriginal(ctx context.Context, sheet string) (domain.RawTable, error) {
	rows, err := f.read(ctx, sheet)
	if err != nil {
		return domain.RawTable{}, err
	}

	header := append([]string(nil), rows[0]...)
	return domain.RawTable{Header: header, Rows: padRows(rows[1:], len(header))}, nil
}

func (f *Fetcher) read(ctx context.Context, sheet string) ([][]string, error) {
	rows, err := f.source.ReadSheet(ctx, sheet)
	if err != nil {
		var unavailable *domain.SourceUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}
		return nil, &domain.SourceUnavailableError{Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.SourceUnavailableError{Sheet: sheet, Err: errEmptySheet}
	}
	return rows, nil
}

// padRows garante que toda linha tenha exatamente width células.
func padRows(rows [][]string, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		out = append(out, cells)
	}
	return out
}
