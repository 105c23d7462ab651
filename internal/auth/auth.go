package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims defines the payload for the JWT. The dashboard only knows
// anonymous staff sessions, so the claims carry little more than the
// minted user id.
type JWTClaims struct {
	UserID    string `json:"userId"`
	Anonymous bool   `json:"anonymous"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens. The secret comes from
// configuration, never from the source.
type TokenIssuer struct {
	Secret     []byte
	Expiration time.Duration
}

// Generate mints a session token for a user id.
func (i *TokenIssuer) Generate(userID string, anonymous bool) (string, error) {
	claims := &JWTClaims{
		UserID:    userID,
		Anonymous: anonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.Expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

// Parse verifies a token string and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return i.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
