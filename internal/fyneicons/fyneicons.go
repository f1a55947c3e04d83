// Package fyneicons exposes plugin icons as fyne resources.
package fyneicons

import (
	"path"

	"fyne.io/fyne/v2"

	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
)

// Resolver resolves icons through a host resolver and wraps them as static
// fyne resources. Host errors are returned unchanged.
type Resolver struct {
	Host icons.Resolver[*host.Icon]
}

// Resolve implements icons.Resolver.
func (r Resolver) Resolve(p icons.Path) (fyne.Resource, error) {
	icon, err := r.Host.Resolve(p)
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(path.Base(string(p)), icon.SVG()), nil
}

// Load resolves the plugin icons as fyne resources.
func Load(h icons.Resolver[*host.Icon], opts ...icons.Option) (*icons.Set[fyne.Resource], error) {
	return icons.Load[fyne.Resource](Resolver{Host: h}, opts...)
}
