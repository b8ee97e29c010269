// Package cli wires cobra commands to the app container, keeping command
// definitions (internal/cli) separate from dependency injection
// (internal/app).
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signguard/signguard/internal/app"
	"github.com/signguard/signguard/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// NewRootCmd builds signguard's root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "signguard",
		Short: "Decode and assess the trust of Gnosis Safe calldata before you sign it",
		Long: `signguard decodes Ethereum multisig calldata offline — resolving function
signatures through a verified registry, local ABIs, a trust profile, and
finally an external unverified lookup — and scores what signing it would
actually do, independent of whether the contract is trusted.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(cmd)
			a, err := app.InitApp(v, cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("chain", "", "chain directory name (default: ethereum)")
	rootCmd.PersistentFlags().String("abi-root", "", "filesystem root of the local ABI registry")
	rootCmd.PersistentFlags().Uint64("safe-chain-id", 0, "chain ID used to resolve the Safe Transaction Service host")
	rootCmd.PersistentFlags().Duration("four-byte-timeout", 0, "timeout for the external 4byte.directory lookup")
	rootCmd.PersistentFlags().Bool("offline", false, "never reach out to a network; resolve from the verified registry, local ABIs, and trust profile only")
	rootCmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of the colored report")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(NewDecodeCmd())

	return rootCmd
}

// getApp retrieves the app instance PersistentPreRunE stashed in the
// command's context.
func getApp(cmd *cobra.Command) (*app.App, error) {
	v := cmd.Context().Value(appKey)
	if v == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	a, ok := v.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance in context")
	}
	return a, nil
}
