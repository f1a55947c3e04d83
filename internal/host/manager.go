// Package host provides an icon-resolution service over bundled assets, in the
// shape an IDE host exposes to its plugins.
package host

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"

	"github.com/example/vimicons/internal/icons"
	"github.com/example/vimicons/internal/logging"
)

var (
	ErrIconNotFound  = errors.New("icon resource not found")
	ErrIconMalformed = errors.New("icon resource malformed")
	ErrInvalidPath   = errors.New("invalid icon resource path")
)

const placeholderPath icons.Path = "/icons/placeholder.svg"

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16">
  <rect x="1" y="1" width="14" height="14" fill="#C9C9C9"/>
  <rect x="3" y="3" width="10" height="10" fill="#FFFFFF"/>
</svg>`

// IconManager resolves resource paths against a bundled asset tree. Each path
// is read and decoded at most once.
type IconManager struct {
	assets      fs.FS
	placeholder *Icon

	mu      sync.Mutex
	cache   map[icons.Path]*Icon
	lookups map[icons.Path]int
}

// Option configures an IconManager.
type Option func(*IconManager)

// WithPlaceholder makes the manager answer failed lookups with a built-in
// placeholder icon instead of an error.
func WithPlaceholder() Option {
	return func(m *IconManager) {
		icon, err := newIcon(placeholderPath, []byte(placeholderSVG))
		if err != nil {
			panic(fmt.Sprintf("built-in placeholder icon: %v", err))
		}
		m.placeholder = icon
	}
}

// NewIconManager returns a manager serving resources from assets.
func NewIconManager(assets fs.FS, opts ...Option) *IconManager {
	m := &IconManager{
		assets:  assets,
		cache:   make(map[icons.Path]*Icon),
		lookups: make(map[icons.Path]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve returns the icon for path. It implements icons.Resolver.
func (m *IconManager) Resolve(path icons.Path) (*Icon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups[path]++
	if icon, ok := m.cache[path]; ok {
		return icon, nil
	}

	icon, err := m.load(path)
	if err != nil {
		if m.placeholder != nil {
			log.Printf("icon %s unavailable, using placeholder: %v", path, err)
			return m.placeholder, nil
		}
		return nil, err
	}

	m.cache[path] = icon
	logging.Debugf("resolved icon %s id=%s digest=%s", path, icon.ID(), logging.ShortDigest(icon.Digest()))
	return icon, nil
}

// Lookups reports how many times path has been requested.
func (m *IconManager) Lookups(path icons.Path) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups[path]
}

func (m *IconManager) load(path icons.Path) (*Icon, error) {
	name, err := assetName(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(m.assets, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIconNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read icon %s: %w", path, err)
	}

	icon, err := newIcon(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return icon, nil
}

func assetName(path icons.Path) (string, error) {
	raw := string(path)
	if !strings.HasPrefix(raw, "/") {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, raw)
	}
	name := strings.TrimPrefix(raw, "/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}
	return name, nil
}
