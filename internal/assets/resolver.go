package assets

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the style is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying the custom loader first if available.
// Only "not found" errors fall through to the embedded loader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// ResolveStyle returns CSS for nameOrPath. A value that looks like a path
// (contains a separator) is read from disk as is; anything else is a style
// name resolved through LoadStyle.
func (r *AssetResolver) ResolveStyle(nameOrPath string) (string, error) {
	if !fileutil.IsFilePath(nameOrPath) {
		return r.LoadStyle(nameOrPath)
	}

	content, err := os.ReadFile(nameOrPath) // #nosec G304 -- style path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, nameOrPath)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Available lists the style names the resolver can serve from embedded assets.
func (r *AssetResolver) Available() []string {
	return r.embedded.ListStyles()
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
