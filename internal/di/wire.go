//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/config"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideClock,

		// Data sources and fallback chain
		ProvideAdapters,
		ProvideResolver,

		// Cycle pipeline
		ProvideVelocityEstimator,
		ProvideClassifier,
		ProvideComposer,
		ProvideNotifiers,
		ProvideMonitor,

		// Ops surface
		ProvideCache,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
