package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultFourByteTimeout = 5 * time.Second

// Provider resolves a RuntimeConfig with flag > env > signguard.toml >
// default precedence. v is expected to already have the CLI's flags
// bound (BindPFlag), so GetString/GetBool/... resolve a flag's value
// ahead of anything SetDefault or AutomaticEnv would otherwise supply.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	_ = godotenv.Load() // best-effort; a missing .env is not an error

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, err
	}
	fc, err := loadFileConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix("SIGNGUARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// flag > env > signguard.toml > hardcoded default, in that order.
	// v.GetString/GetUint64 only return non-zero when a flag or an
	// automatic env var actually supplied the value — no SetDefault is
	// registered here, so an unset key resolves to "" / 0 and falls
	// through to the file layer below.
	cfg := &RuntimeConfig{
		ABIRoot:     firstNonEmpty(v.GetString("abi_root"), fc.ABIRoot, "./abi"),
		ProfilePath: firstNonEmpty(v.GetString("profile_path"), fc.ProfilePath, ""),
		Chain:       firstNonEmpty(v.GetString("chain"), fc.Chain, "ethereum"),
		SafeChainID: firstNonZeroUint(v.GetUint64("safe_chain_id"), fc.SafeChainID, 1),
		Offline:     v.GetBool("offline"),
		Debug:       v.GetBool("debug"),
		JSON:        v.GetBool("json"),
		RPCURLs:     fc.RPCEndpoints,
	}

	timeoutStr := firstNonEmpty(v.GetString("four_byte_timeout"), fc.FourByteTimeout, "")
	d := defaultFourByteTimeout
	if timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil {
			d = parsed
		}
	}
	cfg.FourByteTimeout = d

	return cfg, nil
}

// SetupViper binds cmd's pflags into a fresh viper instance so Provider's
// v.GetString/GetBool calls resolve a flag's value ahead of its
// environment variable counterpart.
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	nameFormatter := strings.NewReplacer("-", "_", ".", "_")

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := nameFormatter.Replace(f.Name)
		if err := v.BindPFlag(name, f); err != nil {
			panic(err)
		}
	})

	return v
}

// firstNonEmpty returns the first non-empty string, implementing the
// flag/env > file > default precedence chain.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroUint(vals ...uint64) uint64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
