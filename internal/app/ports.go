package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/signguard/signguard/internal/domain"
)

// DecodeOutput is an alias for the orchestrator's result type, kept
// distinct by name so the CLI and renderer layers never need to import
// the decode package just to spell out their own generic instantiation.
type DecodeOutput = domain.AnalysisResult

// TransactionFetcher mirrors txfetch.TransactionFetcher so App can depend
// on the port without importing the concrete adapter package.
type TransactionFetcher interface {
	FetchSafeExecTransaction(ctx context.Context, txHash common.Hash) (*domain.SafeExecCall, error)
}

// SafeTransactionClient mirrors safeapi.Client's exported method.
type SafeTransactionClient interface {
	FetchPendingSafeTransaction(ctx context.Context, safeTxHash common.Hash) (*domain.SafeExecCall, error)
}
