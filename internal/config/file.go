package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the signguard.toml shape: a flat, single-profile document —
// there is exactly one signguard config per project, no namespace or
// profile resolution.
type fileConfig struct {
	ABIRoot         string            `toml:"abi_root"`
	ProfilePath     string            `toml:"profile_path"`
	Chain           string            `toml:"chain"`
	RPCEndpoints    map[string]string `toml:"rpc_endpoints"`
	SafeChainID     uint64            `toml:"safe_chain_id"`
	FourByteTimeout string            `toml:"four_byte_timeout"`
}

// loadFileConfig reads signguard.toml from projectRoot. A missing file is
// not an error — every field just stays at its zero value and the
// env/flag/default layers take over.
func loadFileConfig(projectRoot string) (*fileConfig, error) {
	path := filepath.Join(projectRoot, "signguard.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &fileConfig{}, nil
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// findProjectRoot walks up from the working directory looking for
// signguard.toml, falling back to the working directory itself so a
// project without one still resolves to defaults.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, "signguard.toml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}
