// package auth/session.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultCookieName é o nome do cookie de sessão.
const DefaultCookieName = "dre_session"

var errEmptySecret = errors.New("segredo de sessão não configurado")

// Session é o contexto de sessão entregue às páginas.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	ID            string `json:"-"`
}

// SessionManager emite e valida o token assinado guardado no cookie de sessão.
// O token não expira; a sessão termina no logout ou quando o navegador descarta o cookie.
// O nome e os atributos do cookie ficam com a camada HTTP.
type SessionManager struct {
	secret []byte
}

func NewSessionManager(secret []byte) (*SessionManager, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	return &SessionManager{secret: secret}, nil
}

// Issue gera o token de sessão do usuário.
func (m *SessionManager) Issue(username string) (string, error) {
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
	})

	token, err := claims.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar token de sessão: %w", err)
	}
	return token, nil
}

// Parse devolve a sessão do token. Token ausente ou inválido resulta em uma
// sessão não autenticada.
func (m *SessionManager) Parse(token string) Session {
	if token == "" {
		return Session{}
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Session{}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return Session{}
	}
	id, _ := claims["jti"].(string)
	return Session{Authenticated: true, Username: username, ID: id}
}
