package auth

import (
	"errors"
	"time"

	"food-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when a codec is constructed without a signing secret.
var ErrNoSecret = errors.New("auth: signing secret is not configured")

// Claims carried by every issued token
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	Phone  string      `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the short-lived credential attached to every request.
// Tokens are only ever minted server-side, at login.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed JWT for a given user
func (cd *Codec) Issue(user *models.User) (string, error) {
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Phone:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cd.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cd.secret)
}

// Verify decodes a token and returns its claims, or nil for anything
// expired, tampered or malformed. Invalid input never yields an error;
// callers treat nil as unauthenticated.
func (cd *Codec) Verify(tokenStr string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return cd.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
