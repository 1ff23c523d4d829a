// cmd/dashboard/app.go
package main

import (
	"context"
	"fmt"

	"dre-service/internal/config"
	"dre-service/internal/core/auth"
	"dre-service/internal/core/dre"
	"dre-service/internal/core/sheets"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// --- Helper Functions ---

func newSource(src config.SourceConfig, logger *zap.Logger) sheets.Source {
	if src.Kind == config.SourceWorkbook {
		logger.Info("lendo DRE de arquivo local", zap.String("arquivo", src.WorkbookPath))
		return sheets.NewWorkbookSource(src.WorkbookPath)
	}
	return sheets.NewGoogleSheets(sheets.GoogleSheetsOptions{
		BaseURL:           src.BaseURL,
		SpreadsheetID:     src.SpreadsheetID,
		Timeout:           src.Timeout,
		MaxTries:          src.MaxTries,
		RequestsPerSecond: src.RequestsPerSecond,
		Burst:             src.Burst,
	}, logger)
}

func newDREService(cfg *config.Config, logger *zap.Logger) dre.Service {
	fetcher := sheets.NewFetcher(newSource(cfg.Source, logger))
	return dre.NewService(fetcher, dre.Options{
		DateColumn:        cfg.Source.DateColumn,
		SeparatorSkipLast: cfg.Layout.SeparatorSkipLast,
	}, logger)
}

func initFirestoreClient(ctx context.Context, project, database string, logger *zap.Logger) (*firestore.Client, error) {
	client, err := firestore.NewClientWithDatabase(ctx, project, database)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar cliente Firestore: %w", err)
	}
	logger.Info("conectado ao Firestore", zap.String("projeto", project), zap.String("database", database))
	return client, nil
}

// newAuthService monta o login conforme auth.backend. O close devolvido libera o
// cliente do Firestore, quando houver.
func newAuthService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (auth.Service, func(), error) {
	sessions, err := auth.NewSessionManager([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return nil, nil, err
	}

	if cfg.Auth.Backend == config.BackendFirestore {
		client, err := initFirestoreClient(ctx, cfg.Auth.FirestoreProject, cfg.Auth.FirestoreDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		store := auth.NewFirestoreStore(client, cfg.Auth.FirestoreCollection)
		return auth.NewService(store, sessions, logger), func() { _ = client.Close() }, nil
	}

	users, err := cfg.UserTable()
	if err != nil {
		return nil, nil, err
	}
	return auth.NewService(auth.NewStaticStore(users), sessions, logger), func() {}, nil
}
