package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
)

const (
	accessTokenType = "access"

	// DefaultAccessTokenTTL is used when Tokens is built without a TTL
	DefaultAccessTokenTTL = time.Hour
)

var (
	ErrMissingToken = errors.New("auth: bearer token required")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
	ErrRevoked      = errors.New("auth: session revoked")
)

// Claims are the JWT claims carried by an access token
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID string    `json:"session_id"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewTokens creates a token codec. The secret must not be empty.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, clock: time.Now}, nil
}

// Issue mints an access token for userID under a fresh session id
func (t *Tokens) Issue(userID domain.UserID) (string, domain.Session, time.Time, error) {
	now := t.clock()
	expiresAt := now.Add(t.ttl)
	sess := domain.Session{UserID: userID, SessionID: uuid.NewString()}

	claims := &Claims{
		UserID:    userID,
		SessionID: sess.SessionID,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.SessionID,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", domain.Session{}, time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, sess, expiresAt, nil
}

// Parse verifies signature, algorithm, expiry and claim shape
func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected HMAC algorithm: %v", method.Alg())
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if err := validateClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func validateClaims(claims *Claims) error {
	if claims.TokenType != accessTokenType {
		return fmt.Errorf("invalid token type: expected access, got %s", claims.TokenType)
	}
	if claims.UserID == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return fmt.Errorf("invalid session ID")
	}
	return nil
}
