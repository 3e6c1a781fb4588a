// Command issue_token mints a development access token for the job board API.
// When REDIS_URL is set the session is registered so the server accepts it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/auth"
	"github.com/honeycarbs/jobboard/internal/config"
	pkgredis "github.com/honeycarbs/jobboard/pkg/redis"
)

type output struct {
	Token     string    `json:"access_token"`
	TokenType string    `json:"token_type"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func main() {
	userFlag := flag.String("user", "", "user id to issue the token for (random when empty)")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime, overrides JWT_TTL")
	flag.Parse()

	cfg, err := config.LoadAuth()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *ttlFlag > 0 {
		cfg.TokenTTL = *ttlFlag
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("invalid -user %q: %v", *userFlag, err)
		}
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to create token issuer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var registry auth.SessionRegistry
	if cfg.RedisURL != "" {
		client, err := pkgredis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = client.Close() }()
		registry = auth.NewRedisSessionRegistry(client)
	}

	token, sess, expiresAt, err := auth.NewAuthenticator(tokens, registry).IssueSession(ctx, userID)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		Token:     token,
		TokenType: "Bearer",
		UserID:    sess.UserID.String(),
		SessionID: sess.SessionID,
		ExpiresAt: expiresAt,
	}); err != nil {
		log.Fatalf("failed to write token: %v", err)
	}
}
