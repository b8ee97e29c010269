//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signguard/signguard/internal/cli/render"
	"github.com/signguard/signguard/internal/config"
	"github.com/signguard/signguard/internal/logging"
)

// InitApp creates a fully wired App instance from a cobra invocation's
// flags/env (via v) and output stream (via cmd).
func InitApp(v *viper.Viper, cmd *cobra.Command) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		render.ProvideIO,

		// Decode pipeline
		ProvideABIResolver,
		ProvideSelectorLookupService,
		ProvideDecoder,

		// Network-suspending adapters
		ProvideTransactionFetcher,
		ProvideSafeTransactionClient,

		// Renderer
		ProvideDecodeRenderer,

		// App
		NewApp,
	)
	return nil, nil
}
