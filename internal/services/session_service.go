package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"profix/internal/middleware"
)

// SessionService выпускает короткоживущие подписанные токены сессии.
// Токен проверяется middleware на каждом привилегированном вызове —
// кэш профиля на клиенте сам по себе ничего не открывает.
type SessionService struct {
	key []byte
	ttl time.Duration
}

func NewSessionService(key []byte, ttl time.Duration) *SessionService {
	return &SessionService{key: key, ttl: ttl}
}

func (s *SessionService) Mint(subjectID, roleID int) (string, error) {
	claims := &middleware.Claims{
		UserID: subjectID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
