package plugin

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/example/vimicons/internal/config"
	"github.com/example/vimicons/internal/host"
	"github.com/example/vimicons/internal/icons"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStartPopulatesIcons(t *testing.T) {
	manager, err := Start(config.Default())
	require.NoError(t, err)

	for _, decl := range icons.Declarations() {
		assert.Equal(t, 1, manager.Lookups(decl.Path), "lookups for %s", decl.Path)
	}
	assert.Equal(t, icons.PathIdeaVim, Icons.IdeaVim().Path())
	assert.Equal(t, icons.PathYouTrack, Icons.YouTrack().Path())

	assert.Equal(t, "github.svg", Resources.GitHub().Name())
	assert.Equal(t, Icons.IdeaVimDisabled().SVG(), Resources.IdeaVimDisabled().Content())
	assert.Same(t, Resources.YouTrack(), Resources.YouTrack())

	_, err = Start(config.Default())
	require.ErrorIs(t, err, icons.ErrAlreadyInitialized)
	assert.Equal(t, 1, manager.Lookups(icons.PathIdeaVim))

	want := Icons.IdeaVimDisabled()
	var wg sync.WaitGroup
	var mu sync.Mutex
	mismatches := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if Icons.IdeaVimDisabled() != want {
					mu.Lock()
					mismatches++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, mismatches)
}

func TestNewIconManagerFromAssetDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "icons"), 0o755))
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8"><rect width="8" height="8" fill="#000"/></svg>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icons", "ideavim.svg"), []byte(svg), 0o600))

	cfg := config.Default()
	cfg.AssetDir = dir

	var reg icons.Registry[*host.Icon]
	err := reg.Init(NewIconManager(cfg))
	require.ErrorIs(t, err, host.ErrIconNotFound)
	assert.Contains(t, err.Error(), string(icons.PathIdeaVimDisabled))
}

func TestNewIconManagerPlaceholderPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.AssetDir = t.TempDir()
	cfg.Fallback = config.FallbackPlaceholder

	var reg icons.Registry[*host.Icon]
	require.NoError(t, reg.Init(NewIconManager(cfg)))
	assert.Same(t, reg.IdeaVim(), reg.GitHub())
}
