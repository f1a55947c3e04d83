// Package plugin owns the process-wide plugin state that UI code reads.
package plugin

import (
	"fmt"
	"io/fs"
	"os"

	"fyne.io/fyne/v2"

	"github.com/example/vimicons/assets"
	"github.com/example/vimicons/internal/config"
	"github.com/example/vimicons/internal/fyneicons"
	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
	"github.com/example/vimicons/internal/logging"
)

// Icons holds the plugin icons. It is populated once by Start.
var Icons icons.Registry[*host.Icon]

// Resources holds the same icons as fyne resources, derived from Icons by
// Start.
var Resources icons.Registry[fyne.Resource]

// NewIconManager builds the host icon service described by cfg.
func NewIconManager(cfg *config.Config) *host.IconManager {
	var source fs.FS = assets.FS
	if cfg.AssetDir != "" {
		source = os.DirFS(cfg.AssetDir)
		logging.Debugf("loading icons from %s", cfg.AssetDir)
	}

	var opts []host.Option
	if cfg.Fallback == config.FallbackPlaceholder {
		opts = append(opts, host.WithPlaceholder())
	}
	return host.NewIconManager(source, opts...)
}

// Start resolves the plugin icons. It must run before any UI code reads
// Icons and may only run once per process.
func Start(cfg *config.Config) (*host.IconManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration")
	}

	manager := NewIconManager(cfg)
	if err := Icons.Init(manager); err != nil {
		return nil, err
	}
	if err := Resources.Init(fyneicons.Resolver{Host: Icons.MustIcons().Resolver()}); err != nil {
		return nil, err
	}
	logging.Debugf("plugin icons initialised")
	return manager, nil
}
