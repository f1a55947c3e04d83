package tray

import (
	"errors"
	"fmt"
	"sync"

	"github.com/example/vimicons/internal/config"
	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
	"github.com/example/vimicons/internal/logging"
)

const (
	tooltipEnabled  = "IdeaVim"
	tooltipDisabled = "IdeaVim (disabled)"
)

// Link is a contact menu entry.
type Link struct {
	Label   string
	Tooltip string
	URL     string
	Icon    *host.Icon
}

// Runner drives the status-bar widget: the plugin icon reflecting the
// enabled state, the contact links and the enable toggle.
type Runner struct {
	icons       *icons.Set[*host.Icon]
	saveEnabled func(bool) error

	mu  sync.Mutex
	cfg config.Config
}

// NewRunner constructs a Runner for the resolved plugin icons.
func NewRunner(cfg *config.Config, set *icons.Set[*host.Icon]) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("nil configuration")
	}
	if set == nil {
		return nil, errors.New("nil icon set")
	}
	return &Runner{icons: set, saveEnabled: config.SetEnabled, cfg: *cfg}, nil
}

// Enabled reports the current plugin state.
func (r *Runner) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Enabled
}

// Toggle flips the enabled state and persists only that flag. On a failed
// save the state is left unchanged.
func (r *Runner) Toggle() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := !r.cfg.Enabled
	if err := r.saveEnabled(next); err != nil {
		return r.cfg.Enabled, fmt.Errorf("save configuration: %w", err)
	}
	r.cfg.Enabled = next
	logging.Debugf("plugin enabled=%t", next)
	return next, nil
}

// StatusIcon returns the tray icon and tooltip for the current state.
func (r *Runner) StatusIcon() (*host.Icon, string) {
	if r.Enabled() {
		return r.icons.IdeaVim(), tooltipEnabled
	}
	return r.icons.IdeaVimDisabled(), tooltipDisabled
}

// Links returns the contact entries in menu order.
func (r *Runner) Links() []Link {
	return []Link{
		{
			Label:   "GitHub",
			Tooltip: "Open the IdeaVim repository",
			URL:     "https://github.com/JetBrains/ideavim",
			Icon:    r.icons.GitHub(),
		},
		{
			Label:   "Twitter",
			Tooltip: "Follow @ideavim",
			URL:     "https://twitter.com/ideavim",
			Icon:    r.icons.Twitter(),
		},
		{
			Label:   "YouTrack",
			Tooltip: "Report an issue",
			URL:     "https://youtrack.jetbrains.com/issues/VIM",
			Icon:    r.icons.YouTrack(),
		},
	}
}

func (r *Runner) iconSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.IconSize
}

// trayImage rasterises icon into the byte format the platform tray expects.
func (r *Runner) trayImage(icon *host.Icon) ([]byte, error) {
	data, err := icon.PNG(r.iconSize())
	if err != nil {
		return nil, err
	}
	normalized := platformNormalizeIcon(data)
	if len(normalized) == 0 {
		return nil, fmt.Errorf("normalize tray icon %s", icon.Path())
	}
	return normalized, nil
}
