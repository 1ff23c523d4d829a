// package auth/service.go
package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	Session(token string) Session
}

type service struct {
	store    CredentialStore
	sessions *SessionManager
	logger   *zap.Logger
}

func NewService(store CredentialStore, sessions *SessionManager, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{store: store, sessions: sessions, logger: logger}
}

// Login confere as credenciais e devolve o token da nova sessão.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.store.Verify(ctx, username, password)
	if err != nil {
		s.logger.Error("falha ao verificar credenciais", zap.String("usuario", username), zap.Error(err))
		return "", fmt.Errorf("falha ao verificar credenciais: %w", err)
	}
	if !ok {
		s.logger.Info("login recusado", zap.String("usuario", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(username)
	if err != nil {
		return "", err
	}
	s.logger.Info("login realizado", zap.String("usuario", username))
	return token, nil
}

func (s *service) Session(token string) Session {
	return s.sessions.Parse(token)
}
