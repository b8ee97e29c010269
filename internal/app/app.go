// Package app wires together the decode orchestrator, its adapters, and
// the CLI's renderer into one dependency-injected container.
package app

import (
	"log/slog"

	"github.com/signguard/signguard/internal/cli/render"
	"github.com/signguard/signguard/internal/config"
	"github.com/signguard/signguard/internal/decode"
)

// App is the application container every cobra command reaches into.
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Core pipeline
	Decoder *decode.Decoder

	// External, network-suspending adapters — nil when Config.Offline.
	TxFetcher   TransactionFetcher
	SafeClient  SafeTransactionClient

	// Renderer
	DecodeRenderer render.Renderer[*DecodeOutput]
}

// NewApp assembles an App from its already-constructed dependencies.
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	decoder *decode.Decoder,
	txFetcher TransactionFetcher,
	safeClient SafeTransactionClient,
	decodeRenderer render.Renderer[*DecodeOutput],
) (*App, error) {
	return &App{
		Config:         cfg,
		Logger:         logger,
		Decoder:        decoder,
		TxFetcher:      txFetcher,
		SafeClient:     safeClient,
		DecodeRenderer: decodeRenderer,
	}, nil
}
