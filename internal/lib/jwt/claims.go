// Package jwt реализует разбор и выпуск bearer-токенов личности.
//
// Токены выпускает внешний провайдер идентификации, разделяющий с сервисом
// секретный ключ HS256. Сервис только проверяет подпись и срок действия:
// роль в токене не хранится и определяется по спискам доступа на каждый запрос.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора токенов личности.
type Maker interface {
	// GenerateToken выпускает токен для субъекта uid с почтой email.
	GenerateToken(uid, email string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
