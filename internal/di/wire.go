//go:build wireinject
// +build wireinject

package di

import (
	"PumpStat/internal/usecase"
	"PumpStat/pkg/config"
	"PumpStat/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Upstream sources
		ProvideHTTPClient,
		ProvideSourceSet,
		ProvideCompletionService,

		// Use cases
		ProvideResolver,
		usecase.NewVolumeService,
		usecase.NewAnalysisService,

		// HTTP
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
