package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Authenticator resolves an Authorization header into a Session
type Authenticator struct {
	tokens   *Tokens
	registry SessionRegistry
}

// NewAuthenticator builds an Authenticator. registry may be nil, in which case
// a valid signature alone is enough.
func NewAuthenticator(tokens *Tokens, registry SessionRegistry) *Authenticator {
	return &Authenticator{tokens: tokens, registry: registry}
}

// Authenticate validates a "Bearer <jwt>" header value
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*domain.Session, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, ErrMissingToken
	}

	if header == "Bearer" {
		return nil, ErrMissingToken
	}

	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, fmt.Errorf("%w: bearer token required", ErrInvalidToken)
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{UserID: claims.UserID, SessionID: claims.SessionID}

	if a.registry != nil {
		owner, found, err := a.registry.Lookup(ctx, claims.SessionID)
		if err != nil {
			return nil, fmt.Errorf("auth: session lookup: %w", err)
		}
		if !found || owner != claims.UserID {
			return nil, ErrRevoked
		}
	}

	return sess, nil
}

// IssueSession mints an access token for userID and registers its session when a
// registry is configured
func (a *Authenticator) IssueSession(ctx context.Context, userID domain.UserID) (string, domain.Session, time.Time, error) {
	token, sess, expiresAt, err := a.tokens.Issue(userID)
	if err != nil {
		return "", domain.Session{}, time.Time{}, err
	}

	if a.registry != nil {
		if err := a.registry.Register(ctx, sess, expiresAt); err != nil {
			return "", domain.Session{}, time.Time{}, fmt.Errorf("auth: register session: %w", err)
		}
	}
	return token, sess, expiresAt, nil
}
