// package auth/store.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

// ErrInvalidCredentials é devolvido quando usuário ou senha não conferem.
var ErrInvalidCredentials = errors.New("usuário ou senha inválidos")

// CredentialStore verifica um par usuário/senha.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// StaticStore é uma tabela fixa de usuários e senhas em texto, comparados exatamente.
type StaticStore struct {
	users map[string]string
}

// NewStaticStore copia a tabela de usuários informada.
func NewStaticStore(users map[string]string) *StaticStore {
	copied := make(map[string]string, len(users))
	for user, pass := range users {
		copied[user] = pass
	}
	return &StaticStore{users: copied}
}

func (s *StaticStore) Verify(ctx context.Context, username, password string) (bool, error) {
	expected, ok := s.users[username]
	if !ok {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1, nil
}
