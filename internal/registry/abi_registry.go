package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/signguard/signguard/internal/abicodec"
	"github.com/signguard/signguard/internal/domain"
)

var (
	chainNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	addressPattern   = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// ABIRegistry is the local, per-(chain, address) ABI lookup (C1's second
// table). It is owned by whichever orchestrator constructs it — never a
// package-level singleton — and caches parsed ABIs behind a RWMutex,
// replacing the whole cache map on ClearCache rather than deleting keys,
// so readers never observe a partially-invalidated cache.
type ABIRegistry struct {
	root string
	fsys fs.FS

	mu    sync.RWMutex
	cache map[string]abiCacheEntry
}

// abiCacheEntry holds either a resolved ABI or a cached miss (abi == nil,
// err != nil) — the cache stores both so a contract with no local ABI
// never re-probes the filesystem on a second lookup.
type abiCacheEntry struct {
	abi *domain.ContractABI
	err error
}

// NewABIRegistry builds a registry rooted at root, backed by fsys.
// Callers typically pass the same root string to os.DirFS to build fsys.
// root is used only to police trust-profile abiPath escapes; fsys is what
// actually serves file reads.
func NewABIRegistry(root string, fsys fs.FS) *ABIRegistry {
	return &ABIRegistry{
		root:  root,
		fsys:  fsys,
		cache: make(map[string]abiCacheEntry),
	}
}

type abiFragmentJSON struct {
	Type   string              `json:"type"`
	Name   string              `json:"name"`
	Inputs []domain.ABIInput   `json:"inputs"`
}

// FindByAddress resolves a contract ABI two ways, in strict precedence:
// (a) abiPath, a trust-profile-declared path which MUST resolve inside the
// registry root, or (b) the default "<chain>/<address>.json" layout. Both
// chain and address are validated before ever reaching a filesystem call:
// chain must match ^[A-Za-z0-9_-]+$ and address must match
// ^0x[0-9a-fA-F]{40}$. Results — hits and misses alike — are memoized
// under a process-lifetime cache keyed by "chain/address".
func (r *ABIRegistry) FindByAddress(chain, address, abiPath string) (*domain.ContractABI, error) {
	if !chainNamePattern.MatchString(chain) {
		return nil, fmt.Errorf("invalid chain directory name %q", chain)
	}
	lowerAddr := strings.ToLower(address)
	if !addressPattern.MatchString(address) {
		return nil, fmt.Errorf("invalid contract address %q", address)
	}

	key := chain + "/" + lowerAddr
	r.mu.RLock()
	if entry, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return entry.abi, entry.err
	}
	r.mu.RUnlock()

	path := r.resolvePath(chain, lowerAddr, abiPath)
	abi, err := r.load(chain, lowerAddr, path)

	r.mu.Lock()
	r.cache[key] = abiCacheEntry{abi: abi, err: err}
	r.mu.Unlock()

	return abi, err
}

// resolvePath implements C1 step (a)/(b). abiPath is tried first, but only
// when filepath.Clean + filepath.Rel against the registry root prove it
// does not escape (no ".." prefix, no absolute result); an escaping
// abiPath is rejected silently and resolution falls through to the
// default "<chain>/<address>.json" layout.
func (r *ABIRegistry) resolvePath(chain, lowerAddr, abiPath string) string {
	if abiPath != "" {
		root := r.root
		if root == "" {
			root = "."
		}
		cleanRoot := filepath.Clean(root)
		candidate := filepath.Clean(filepath.Join(cleanRoot, abiPath))
		rel, err := filepath.Rel(cleanRoot, candidate)
		escapes := err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
		if !escapes {
			return filepath.ToSlash(rel)
		}
	}
	return chain + "/" + lowerAddr + ".json"
}

func (r *ABIRegistry) load(chain, lowerAddr, path string) (*domain.ContractABI, error) {
	raw, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return nil, err
	}

	var fragments []abiFragmentJSON
	if err := json.Unmarshal(raw, &fragments); err != nil {
		return nil, fmt.Errorf("parsing ABI %s: %w", path, err)
	}

	abi := &domain.ContractABI{
		ChainID: chain,
		Address: lowerAddr,
		Raw:     raw,
	}
	for _, f := range fragments {
		if f.Type != "function" {
			continue
		}
		abi.Fragments = append(abi.Fragments, domain.FunctionFragment{
			Type:   f.Type,
			Name:   f.Name,
			Inputs: f.Inputs,
		})
	}

	return abi, nil
}

// ClearCache atomically replaces the cache with an empty map. Existing
// *ContractABI values returned to earlier callers remain valid (they are
// never mutated in place).
func (r *ABIRegistry) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string]abiCacheEntry)
	r.mu.Unlock()
}

// MatchSelector finds the fragment in contractABI whose canonical signature
// hashes to sel, returning it alongside its positional parameter names for
// the abicodec decode leg.
func (r *ABIRegistry) MatchSelector(contractABI *domain.ContractABI, sel domain.Selector) (*domain.FunctionFragment, []string) {
	for i := range contractABI.Fragments {
		frag := &contractABI.Fragments[i]
		types := make([]string, len(frag.Inputs))
		names := make([]string, len(frag.Inputs))
		for j, in := range frag.Inputs {
			types[j] = in.Type
			names[j] = in.Name
		}
		sig := frag.Name + "(" + strings.Join(types, ",") + ")"
		if abicodec.Keccak256Selector(sig) == sel {
			return frag, names
		}
	}
	return nil, nil
}
