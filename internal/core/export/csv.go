// Package export gera as planilhas de download do histórico da DRE.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"dre-service/internal/domain"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const dateLayout = "02/01/2006"

// CSV gera o histórico separado por ';', com vírgula decimal e codificação
// Windows-1252, que o Excel em português abre sem importação manual.
func CSV(history domain.History) ([]byte, error) {
	var buffer bytes.Buffer
	encoded := transform.NewWriter(&buffer, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	writer := csv.NewWriter(encoded)
	writer.Comma = ';'

	header := make([]string, 0, len(history.Columns)+1)
	header = append(header, "Data")
	for _, column := range history.Columns {
		header = append(header, sanitizeForCSV(column))
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho do CSV: %w", err)
	}

	for _, row := range history.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Date.Format(dateLayout))
		for _, column := range history.Columns {
			record = append(record, formatTwoDecimalsComma(row.Values[column]))
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d do CSV: %w", row.Line, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if err := encoded.Close(); err != nil {
		return nil, fmt.Errorf("erro ao codificar CSV: %w", err)
	}
	return buffer.Bytes(), nil
}

func formatTwoDecimalsComma(val float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", val), ".", ",", 1)
}

// sanitizeForCSV remove quebras de linha e tabs e troca outros controles por espaço.
func sanitizeForCSV(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			continue
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
