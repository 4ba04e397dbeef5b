// Package assets maps logical asset names ("css/app.css") to the hashed
// filenames the build pipeline writes into manifest.json.
package assets

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const staticPrefix = "/static/"

// devReloadThrottle caps how often dev mode re-reads the manifest. A page
// render resolves several assets in a row and they should not each hit disk.
const devReloadThrottle = 50 * time.Millisecond

// AssetResolver answers lookups against a cached copy of manifest.json.
// A missing or unreadable manifest degrades to identity resolution, which is
// what dev servers without a build step want anyway.
type AssetResolver struct {
	mu       sync.RWMutex
	manifest map[string]string

	// Exactly one of diskPath / fsys is set, depending on the constructor.
	diskPath string
	fsys     fs.FS
	fsysPath string

	modTime   time.Time
	devReload time.Time
	logger    *slog.Logger
}

// NewAssetResolverFromDisk reads the manifest from the local filesystem and
// re-reads it whenever the file's mtime moves forward.
func NewAssetResolverFromDisk(manifestPath string) (*AssetResolver, error) {
	r := &AssetResolver{
		manifest: map[string]string{},
		diskPath: manifestPath,
		logger:   slog.Default(),
	}
	return r, r.Reload()
}

// NewAssetResolverFromFS reads the manifest once from an fs.FS, typically the
// embedded static tree in production builds.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	r := &AssetResolver{
		manifest: map[string]string{},
		fsys:     fsys,
		fsysPath: manifestPath,
		logger:   slog.Default(),
	}
	return r, r.Reload()
}

// Resolve returns the static URL for a logical asset name. Names absent from
// the manifest pass through unhashed.
func (r *AssetResolver) Resolve(logicalName string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hashed, ok := r.manifest[logicalName]; ok {
		return staticPrefix + hashed
	}
	return staticPrefix + logicalName
}

// Reload replaces the cached manifest with whatever the source holds now.
func (r *AssetResolver) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.manifest = map[string]string{}
			r.modTime = time.Time{}
			return nil
		}
		return err
	}

	parsed := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			r.log().Error("asset manifest is not valid JSON",
				slog.String("manifest", r.sourcePath()),
				slog.Any("error", err),
			)
			parsed = map[string]string{}
		}
	}
	r.manifest = parsed

	if r.diskPath != "" {
		if info, err := os.Stat(r.diskPath); err == nil {
			r.modTime = info.ModTime()
		} else {
			r.modTime = time.Time{}
		}
	}
	return nil
}

func (r *AssetResolver) read() ([]byte, error) {
	if r.diskPath != "" {
		return os.ReadFile(r.diskPath)
	}
	if r.fsys != nil {
		return fs.ReadFile(r.fsys, r.fsysPath)
	}
	return nil, nil
}

// reloadIfChanged re-reads a disk-backed manifest when its mtime has moved.
// FS-backed resolvers are immutable, so this is a no-op for them.
func (r *AssetResolver) reloadIfChanged() {
	if r == nil || r.diskPath == "" {
		return
	}

	info, err := os.Stat(r.diskPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.mu.Lock()
			r.manifest = map[string]string{}
			r.modTime = time.Time{}
			r.mu.Unlock()
		}
		return
	}

	r.mu.RLock()
	stale := info.ModTime().After(r.modTime)
	r.mu.RUnlock()
	if !stale {
		return
	}

	if err := r.Reload(); err != nil {
		r.log().Error("asset manifest reload failed",
			slog.String("manifest", r.sourcePath()),
			slog.Any("error", err),
		)
	}
}

// reloadForDev unconditionally refreshes the manifest, throttled so a burst
// of lookups within one render costs a single disk read.
func (r *AssetResolver) reloadForDev() {
	now := time.Now()

	r.mu.Lock()
	if !r.devReload.IsZero() && now.Sub(r.devReload) < devReloadThrottle {
		r.mu.Unlock()
		return
	}
	r.devReload = now
	r.mu.Unlock()

	if err := r.Reload(); err != nil {
		r.log().Error("asset manifest reload failed",
			slog.String("manifest", r.sourcePath()),
			slog.Any("error", err),
		)
	}
}

func (r *AssetResolver) sourcePath() string {
	if r.diskPath != "" {
		return r.diskPath
	}
	return r.fsysPath
}

func (r *AssetResolver) log() *slog.Logger {
	if r != nil && r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// ResolveAsset is the template-facing entry point. In dev mode the manifest is
// refreshed eagerly and the result is checked against the working tree, so a
// rebuilt bundle shows up without a server restart. In production the cached
// manifest is trusted.
func ResolveAsset(resolver *AssetResolver, logicalName string, devMode bool) string {
	fallback := staticPrefix + logicalName
	if resolver == nil {
		return fallback
	}

	if !devMode {
		resolver.reloadIfChanged()
		return resolver.Resolve(logicalName)
	}

	resolver.reloadForDev()
	resolved := resolver.Resolve(logicalName)
	if existsOnDisk(resolved) {
		return resolved
	}

	// The manifest may point at a bundle that was just rebuilt under a new
	// hash. Re-read once before giving up on the hashed name.
	if err := resolver.Reload(); err != nil {
		resolver.log().Error("asset manifest reload failed",
			slog.String("manifest", resolver.sourcePath()),
			slog.Any("error", err),
		)
	}
	resolved = resolver.Resolve(logicalName)
	if !existsOnDisk(resolved) {
		resolver.log().Warn("resolved asset missing on disk, serving logical name",
			slog.String("asset", logicalName),
			slog.String("resolved", resolved),
		)
		return fallback
	}
	return resolved
}

// existsOnDisk checks the working-tree locations the dev static handler
// serves from.
func existsOnDisk(resolvedPath string) bool {
	rel := strings.TrimPrefix(resolvedPath, staticPrefix)
	if rel == "" || rel == resolvedPath {
		return false
	}

	for _, p := range []string{
		filepath.Join("frontend", "static", rel),
		filepath.Join("frontend", "public", rel),
	} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
