package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL é o host da exportação publicada do Google Sheets.
const DefaultBaseURL = "https://docs.google.com"

var utf8BOM = []byte("\xef\xbb\xbf")

// GoogleSheetsOptions configura o cliente da exportação CSV.
type GoogleSheetsOptions struct {
	BaseURL           string
	SpreadsheetID     string
	Timeout           time.Duration
	MaxTries          uint
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
}

// GoogleSheets lê abas pela URL gviz/tq com saída CSV.
type GoogleSheets struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	timeout       time.Duration
	maxTries      uint
	limiter       *rate.Limiter
	logger        *zap.Logger
}

var _ Source = (*GoogleSheets)(nil)

// NewGoogleSheets cria o cliente. Valores zerados recebem os padrões do serviço.
func NewGoogleSheets(opts GoogleSheetsOptions, logger *zap.Logger) *GoogleSheets {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = 1
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &GoogleSheets{
		httpClient:    client,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		spreadsheetID: opts.SpreadsheetID,
		timeout:       opts.Timeout,
		maxTries:      opts.MaxTries,
		limiter:       rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:        logger,
	}
}

// CSVURL monta a URL de exportação da aba. Espaços viram %20, nunca "+".
func (g *GoogleSheets) CSVURL(sheet string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(sheet), "+", "%20")
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s", g.baseURL, g.spreadsheetID, encoded)
}

// ReadSheet baixa a aba dentro do tempo limite configurado, com novas tentativas
// apenas para falhas transitórias (rede e 5xx).
func (g *GoogleSheets) ReadSheet(ctx context.Context, sheet string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	target := g.CSVURL(sheet)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	notify := func(err error, wait time.Duration) {
		g.logger.Warn("Nova tentativa de leitura da planilha",
			zap.String("sheet", sheet), zap.Error(err), zap.Duration("backoff", wait))
	}

	operation := func() ([][]string, error) {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		return g.download(ctx, target)
	}

	rows, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(g.maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		g.logger.Error("Falha ao ler planilha", zap.String("sheet", sheet), zap.Error(err))
		return nil, err
	}

	g.logger.Debug("Planilha lida", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return rows, nil
}

func (g *GoogleSheets) download(ctx context.Context, target string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("erro ao montar requisição: %w", err))
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("tempo esgotado: %w", err))
		}
		return nil, fmt.Errorf("erro de rede: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("resposta inesperada: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("resposta inesperada: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("tempo esgotado: %w", err))
		}
		return nil, fmt.Errorf("erro de rede: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("CSV inválido: %w", err))
	}
	return rows, nil
}
