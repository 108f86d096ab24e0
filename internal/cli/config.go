package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// fileConfig is the optional on-disk config a crawdb invocation can load
// with --config, in JSONC (comments and trailing commas allowed) so
// operators can annotate a deployment's index/data layout in place.
// Flags passed on the command line always win over a loaded value,
// grounded on calvinalkan-agent-task's LoadConfig (flag overrides beat
// file, file beats default).
type fileConfig struct {
	PathIdx     string `json:"path_idx"`
	PathDat     string `json:"path_dat"`
	KeySize     uint32 `json:"key_size"`
	BloomFilter bool   `json:"bloom_filter"`
	SyncWrites  bool   `json:"sync_writes"`
}

// loadFileConfig reads and standardizes a JSONC config file to plain
// JSON via hujson before decoding, so a config file may carry `//`
// comments and trailing commas without tripping a strict JSON decoder.
func loadFileConfig(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return &cfg, nil
}
