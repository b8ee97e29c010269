package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/signguard/signguard/internal/app"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
	"github.com/signguard/signguard/internal/trust"
)

// NewDecodeCmd builds the decode command: signguard's single operation,
// turning calldata (given directly, or fetched by transaction hash) into
// a scored AnalysisResult.
func NewDecodeCmd() *cobra.Command {
	var (
		calldataHex string
		target      string
		operation   string
		profilePath string
		txHash      string
		safeTxHash  string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode and assess one piece of calldata",
		Long: `Decode resolves a function signature through the verified registry, a
local ABI, a trust profile, or — unless --offline is set — an external
unverified lookup, then reports both how much the signer should trust the
call and what signing it would actually do.

Provide calldata directly with --calldata, or fetch it by hash with
--tx-hash (a mined execTransaction call) or --safe-tx-hash (a pending or
executed Safe Transaction Service entry).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			req, err := buildRequest(ctx, a, decodeFlags{
				calldataHex: calldataHex,
				target:      target,
				operation:   operation,
				profilePath: profilePath,
				txHash:      txHash,
				safeTxHash:  safeTxHash,
			})
			if err != nil {
				return err
			}

			result, err := runDecode(ctx, a, *req)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if a.Config.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return a.DecodeRenderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&calldataHex, "calldata", "", "0x-prefixed calldata to decode")
	cmd.Flags().StringVar(&target, "target", "", "the contract address the calldata targets")
	cmd.Flags().StringVar(&operation, "operation", "call", "call variant: call or delegatecall")
	cmd.Flags().StringVar(&profilePath, "profile", "", "path to a trust profile JSON document")
	cmd.Flags().StringVar(&txHash, "tx-hash", "", "fetch calldata from a mined execTransaction by hash")
	cmd.Flags().StringVar(&safeTxHash, "safe-tx-hash", "", "fetch calldata from the Safe Transaction Service by safeTxHash")

	return cmd
}

type decodeFlags struct {
	calldataHex string
	target      string
	operation   string
	profilePath string
	txHash      string
	safeTxHash  string
}

// buildRequest assembles a DecodeRequest from whichever calldata source
// the caller chose: raw hex, a mined transaction hash, or a Safe
// Transaction Service hash. Exactly one must be given. The trust profile
// comes from --profile, or from the configured profile path when the flag
// is empty.
func buildRequest(ctx context.Context, a *app.App, f decodeFlags) (*domain.DecodeRequest, error) {
	profilePath := f.profilePath
	if profilePath == "" && a.Config != nil {
		profilePath = a.Config.ProfilePath
	}
	profile, err := loadProfile(profilePath)
	if err != nil {
		return nil, err
	}

	switch {
	case f.calldataHex != "":
		data, err := domain.ParseCalldata(f.calldataHex)
		if err != nil {
			return nil, err
		}
		var target *string
		if f.target != "" {
			lower := strings.ToLower(f.target)
			target = &lower
		}
		return &domain.DecodeRequest{
			Calldata:  data,
			Target:    target,
			Chain:     a.Config.Chain,
			Operation: parseOperation(f.operation),
			Profile:   profile,
		}, nil

	case f.txHash != "":
		if a.TxFetcher == nil {
			return nil, fmt.Errorf("no RPC endpoint configured for chain %q (or --offline was set)", a.Config.Chain)
		}
		call, err := a.TxFetcher.FetchSafeExecTransaction(ctx, common.HexToHash(f.txHash))
		if err != nil {
			return nil, err
		}
		return requestFromSafeExecCall(call, a.Config.Chain, profile), nil

	case f.safeTxHash != "":
		if a.SafeClient == nil {
			return nil, fmt.Errorf("Safe Transaction Service unavailable (unsupported chain or --offline was set)")
		}
		call, err := a.SafeClient.FetchPendingSafeTransaction(ctx, common.HexToHash(f.safeTxHash))
		if err != nil {
			return nil, err
		}
		return requestFromSafeExecCall(call, a.Config.Chain, profile), nil

	default:
		return nil, fmt.Errorf("one of --calldata, --tx-hash, or --safe-tx-hash is required")
	}
}

func requestFromSafeExecCall(call *domain.SafeExecCall, chain string, profile *domain.TrustProfile) *domain.DecodeRequest {
	target := strings.ToLower(call.To)
	return &domain.DecodeRequest{
		Calldata:  call.Data,
		Target:    &target,
		Chain:     chain,
		Operation: call.Operation,
		Profile:   profile,
	}
}

func parseOperation(s string) domain.Operation {
	if strings.EqualFold(s, "delegatecall") {
		return domain.OpDelegateCall
	}
	return domain.OpCall
}

// loadProfile reads and validates a trust profile. A ProfileValidationFailure
// (§7) does not abort the command: it is returned as a profile carrying
// LoadError, so the decode still runs as though no profile had been
// supplied, with the error surfaced in the result's trust context.
func loadProfile(path string) (*domain.TrustProfile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trust profile: %w", err)
	}
	profile, err := trust.LoadProfile(data)
	if err != nil {
		if errors.Is(err, errs.ErrProfileValidation) {
			return &domain.TrustProfile{LoadError: err}, nil
		}
		return nil, fmt.Errorf("load trust profile: %w", err)
	}
	return profile, nil
}

// runDecode runs the orchestrator, wrapping it with a spinner covering
// the external signature lookup's network round trip whenever the run
// is not offline.
func runDecode(ctx context.Context, a *app.App, req domain.DecodeRequest) (*domain.AnalysisResult, error) {
	if a.Config.Offline {
		return a.Decoder.Run(ctx, req)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " resolving signature…"
	s.Start()
	defer s.Stop()
	return a.Decoder.Run(ctx, req)
}
