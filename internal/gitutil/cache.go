package gitutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/example/workmux/internal/logging"
)

// StatusCache is a best-effort, path-keyed persistence of GitStatus used to
// avoid recomputing status for every worktree on every dashboard frame. It
// is advisory only: a stale or missing cache never causes incorrect
// behavior, only a momentarily out-of-date display.
type StatusCache map[string]GitStatus

func cachePath() string {
	dir := homeDir()
	return filepath.Join(dir, ".cache", "workmux", "git_status_cache.json")
}

// LoadStatusCache reads the cache file, returning an empty map on any
// failure (missing file, corrupt JSON).
func LoadStatusCache() StatusCache {
	data, err := os.ReadFile(cachePath())
	if err != nil {
		return StatusCache{}
	}
	var cache StatusCache
	if err := json.Unmarshal(data, &cache); err != nil {
		logging.Warnf("discarding corrupt git status cache: %v", err)
		return StatusCache{}
	}
	if cache == nil {
		cache = StatusCache{}
	}
	return cache
}

// SaveStatusCache writes the cache file, creating its parent directory as
// needed. Failures are logged and swallowed; the cache is advisory.
func SaveStatusCache(cache StatusCache) {
	path := cachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logging.Warnf("create git status cache dir: %v", err)
		return
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		logging.Warnf("marshal git status cache: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logging.Warnf("write git status cache: %v", err)
	}
}
