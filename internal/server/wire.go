//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobboard/internal/auth"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// InitializeResources connects the configured store, event bus, session registry and Sheets client
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Storage
		provideStore,

		// Events
		providePublisher,

		// Services
		job.NewServiceWithDeps,

		// Auth
		provideTokens,
		provideSessionRegistry,
		auth.NewAuthenticator,

		// Tool resources
		provideSheets,
		newResources,
	)

	return nil, nil, nil
}
