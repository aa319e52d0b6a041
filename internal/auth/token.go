package auth

import (
	"errors"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims — структура утверждений токена доступа: стандартные утверждения
// плюс идентификатор пользователя.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken выпускает подписанный HS256 токен с идентификатором пользователя
// и сроком действия validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает
// идентификатор пользователя. Возвращает domain.ErrTokenExpired для
// просроченного токена и domain.ErrInvalidToken для любого другого дефекта.
func ParseToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.UserID, nil
}
