package icons

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrNotInitialized     = errors.New("icons: registry not initialized")
	ErrAlreadyInitialized = errors.New("icons: registry already initialized")
)

// Registry is a process-wide holder for a Set. It is initialised once with
// Init and read any number of times afterwards, from any goroutine.
//
// The zero value is ready to use.
type Registry[H any] struct {
	set atomic.Pointer[Set[H]]

	mu      sync.Mutex
	started bool
	err     error
}

// Init resolves every declared icon through r. It may be called only once;
// a failed Init is not retried and later calls return ErrAlreadyInitialized.
func (g *Registry[H]) Init(r Resolver[H], opts ...Option) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return ErrAlreadyInitialized
	}
	g.started = true

	set, err := Load(r, opts...)
	if err != nil {
		g.err = err
		return err
	}
	g.set.Store(set)
	return nil
}

// Icons returns the resolved set, or the reason it is unavailable.
func (g *Registry[H]) Icons() (*Set[H], error) {
	if set := g.set.Load(); set != nil {
		return set, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return nil, ErrNotInitialized
}

// MustIcons is like Icons but panics when the registry is unavailable.
// Reading icons before startup finished is a programming error.
func (g *Registry[H]) MustIcons() *Set[H] {
	set, err := g.Icons()
	if err != nil {
		panic(err)
	}
	return set
}

func (g *Registry[H]) IdeaVim() H         { return g.MustIcons().IdeaVim() }
func (g *Registry[H]) IdeaVimDisabled() H { return g.MustIcons().IdeaVimDisabled() }
func (g *Registry[H]) GitHub() H          { return g.MustIcons().GitHub() }
func (g *Registry[H]) Twitter() H         { return g.MustIcons().Twitter() }
func (g *Registry[H]) YouTrack() H        { return g.MustIcons().YouTrack() }
