package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Config holds the configuration needed by the token service.
type Config struct {
	JWTSecret     string
	TokenDuration time.Duration
}

// Claims defines the payload for our guest session JWT.
type Claims struct {
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies guest session tokens. Players are
// anonymous: the token carries a freshly minted player ID plus an optional
// display name, and its signature is what ties a WebSocket handshake to
// that identity.
type TokenService struct {
	config Config
}

func NewTokenService(config Config) *TokenService {
	return &TokenService{config: config}
}

// IssueGuest mints a new player identity and returns its signed token.
func (s *TokenService) IssueGuest(name string) (string, uuid.UUID, error) {
	playerID := uuid.New()
	expirationTime := time.Now().Add(s.config.TokenDuration)

	claims := &Claims{
		DisplayName: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   playerID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", uuid.UUID{}, err
	}
	return signed, playerID, nil
}

// Verify parses a token and returns the player identity it carries.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.UUID{}, "", ErrInvalidToken
	}
	playerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.UUID{}, "", ErrInvalidToken
	}
	return playerID, claims.DisplayName, nil
}
