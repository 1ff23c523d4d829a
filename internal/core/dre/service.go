// package dre/service.go
package dre

import (
	"context"
	"time"

	"dre-service/internal/core/sheets"
	"dre-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TableFetcher lê as duas formas de aba usadas pela DRE.
type TableFetcher interface {
	Fetch(ctx context.Context, sheet string) (domain.RawTable, error)
	FetchOriginal(ctx context.Context, sheet string) (domain.RawTable, error)
}

// Service define as operações do painel DRE.
type Service interface {
	Report(ctx context.Context, fund domain.Fund) (domain.Report, error)
	Dashboard(ctx context.Context, fund domain.Fund, day *time.Time) (domain.Dashboard, error)
}

// Options ajusta a leitura da aba limpa e o layout da aba original.
type Options struct {
	DateColumn        string
	SeparatorSkipLast int
}

type service struct {
	fetcher TableFetcher
	opts    Options
	logger  *zap.Logger
}

// NewService cria o serviço da DRE.
func NewService(fetcher TableFetcher, opts Options, logger *zap.Logger) Service {
	if opts.DateColumn == "" {
		opts.DateColumn = sheets.DefaultDateColumn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{fetcher: fetcher, opts: opts, logger: logger}
}

// Report lê as duas abas do fundo em paralelo. Se qualquer uma falhar, nada é
// devolvido.
func (s *service) Report(ctx context.Context, fund domain.Fund) (domain.Report, error) {
	pair, err := Resolve(string(fund))
	if err != nil {
		return domain.Report{}, err
	}

	var clean, original domain.RawTable
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clean, err = s.fetcher.Fetch(gctx, pair.Clean)
		return err
	})
	g.Go(func() error {
		var err error
		original, err = s.fetcher.FetchOriginal(gctx, pair.Original)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("falha ao ler planilha", zap.String("fundo", string(fund)), zap.Error(err))
		return domain.Report{}, err
	}

	dated, dropped, err := sheets.Clean(clean, s.opts.DateColumn)
	if err != nil {
		return domain.Report{}, &domain.SourceUnavailableError{Sheet: pair.Clean, Err: err}
	}
	if dropped > 0 {
		s.logger.Info("linhas sem data válida descartadas", zap.String("aba", pair.Clean), zap.Int("linhas", dropped))
	}
	s.warnDrift(pair.Clean, dated.Header)

	history := NormalizeTable(dated)
	for _, skipped := range history.Skipped {
		s.logger.Warn("linha com valor inválido ignorada",
			zap.String("aba", pair.Clean),
			zap.Int("linha", skipped.Line),
			zap.String("coluna", skipped.Column),
			zap.String("valor", skipped.Value),
		)
	}

	return domain.Report{
		Fund:     fund,
		History:  history,
		Original: BuildOriginalLayout(original, s.opts.SeparatorSkipLast),
	}, nil
}

// Dashboard monta a página do fundo para o dia escolhido. Sem dia, usa a data
// mais recente. O dia é limitado ao intervalo do histórico. Um dia sem linhas
// não é erro: o painel volta com NoData.
func (s *service) Dashboard(ctx context.Context, fund domain.Fund, day *time.Time) (domain.Dashboard, error) {
	report, err := s.Report(ctx, fund)
	if err != nil {
		return domain.Dashboard{}, err
	}
	rows := report.History.Rows
	if len(rows) == 0 {
		return domain.Dashboard{}, domain.ErrNoHistory
	}

	first, last := rows[0].Date, rows[len(rows)-1].Date
	selected := last
	if day != nil {
		selected = ClampDate(*day, first, last)
	}

	summary, err := Summarize(report.History)
	if err != nil {
		return domain.Dashboard{}, err
	}

	dash := domain.Dashboard{
		Fund:     fund,
		Date:     selected,
		MinDate:  first,
		MaxDate:  last,
		History:  report.History,
		Summary:  summary,
		Original: report.Original,
		Skipped:  len(report.History.Skipped),
	}

	matches := FilterByDate(rows, selected)
	if len(matches) == 0 {
		dash.NoData = true
		return dash, nil
	}
	dash.Cards = BuildCards(report.History.Columns, matches[0])
	return dash, nil
}

func (s *service) warnDrift(sheet string, header []string) {
	for _, column := range header {
		if alias, ok := DetectDrift(column); ok {
			s.logger.Warn("cabeçalho parecido com coluna percentual, tratado como moeda",
				zap.String("aba", sheet),
				zap.String("coluna", column),
				zap.String("esperado", alias),
			)
		}
	}
}

