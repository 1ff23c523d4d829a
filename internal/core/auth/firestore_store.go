// package auth/firestore_store.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/iterator"
)

// DefaultUsersCollection é a coleção do Firestore com os usuários do painel.
const DefaultUsersCollection = "users"

// User representa a estrutura de um usuário no Firestore.
type User struct {
	Username     string `firestore:"username"`
	PasswordHash string `firestore:"passwordHash"`
}

// FirestoreStore verifica credenciais contra hashes bcrypt guardados no Firestore.
type FirestoreStore struct {
	db         *firestore.Client
	collection string
}

func NewFirestoreStore(db *firestore.Client, collection string) *FirestoreStore {
	if collection == "" {
		collection = DefaultUsersCollection
	}
	return &FirestoreStore{db: db, collection: collection}
}

func (s *FirestoreStore) Verify(ctx context.Context, username, password string) (bool, error) {
	query := s.db.Collection(s.collection).Where("username", "==", username).Limit(1).Documents(ctx)
	defer query.Stop()

	doc, err := query.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao consultar o banco de dados: %w", err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return false, fmt.Errorf("erro ao ler dados do usuário: %w", err)
	}

	return CheckPassword(user.PasswordHash, password), nil
}

// HashPassword gera o hash bcrypt gravado no campo passwordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara a senha com o hash bcrypt.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
