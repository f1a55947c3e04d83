package fyneicons

import (
	"testing"
	"testing/fstest"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vimicons/assets"
	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
)

func TestLoadWrapsBundledIcons(t *testing.T) {
	manager := host.NewIconManager(assets.FS)

	set, err := Load(manager)
	require.NoError(t, err)

	res := set.GitHub()
	require.NotNil(t, res)
	assert.Equal(t, "github.svg", res.Name())

	icon, err := manager.Resolve(icons.PathGitHub)
	require.NoError(t, err)
	assert.Equal(t, icon.SVG(), res.Content())
	assert.Equal(t, "ideavim_disabled.svg", set.IdeaVimDisabled().Name())
}

func TestLoadPassesHostErrorThrough(t *testing.T) {
	manager := host.NewIconManager(assets.FS)

	set, err := Load(manager, icons.WithPath(icons.NameTwitter, "/icons/does_not_exist.svg"))
	require.ErrorIs(t, err, host.ErrIconNotFound)
	assert.Nil(t, set)
}

func TestLoadNamesResourcesByRequestedPath(t *testing.T) {
	manager := host.NewIconManager(fstest.MapFS{}, host.WithPlaceholder())

	set, err := Load(manager)
	require.NoError(t, err)

	names := make([]string, 0, 5)
	for _, named := range set.All() {
		names = append(names, named.Handle.Name())
	}
	assert.Equal(t, []string{"ideavim.svg", "ideavim_disabled.svg", "github.svg", "twitter.svg", "youtrack.svg"}, names)
}

func TestLoadFromResolvedSet(t *testing.T) {
	manager := host.NewIconManager(assets.FS)
	hostIcons, err := icons.Load[*host.Icon](manager)
	require.NoError(t, err)

	set, err := Load(hostIcons.Resolver())
	require.NoError(t, err)

	assert.Equal(t, hostIcons.Twitter().SVG(), set.Twitter().Content())
	assert.Equal(t, 1, manager.Lookups(icons.PathTwitter))
}

func TestRegistryOfResources(t *testing.T) {
	var reg icons.Registry[fyne.Resource]
	require.NoError(t, reg.Init(Resolver{Host: host.NewIconManager(assets.FS)}))
	assert.Same(t, reg.YouTrack(), reg.YouTrack())
}
