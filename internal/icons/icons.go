// Package icons declares the fixed set of plugin icons and resolves them into
// host-owned handles exactly once.
package icons

import (
	"errors"
	"fmt"
	"reflect"
)

// Path identifies a bundled image resource inside the plugin assets.
type Path string

// Name is the fixed identifier of a plugin icon.
type Name string

const (
	NameIdeaVim         Name = "IDEAVIM"
	NameIdeaVimDisabled Name = "IDEAVIM_DISABLED"
	NameGitHub          Name = "GITHUB"
	NameTwitter         Name = "TWITTER"
	NameYouTrack        Name = "YOUTRACK"
)

const (
	PathIdeaVim         Path = "/icons/ideavim.svg"
	PathIdeaVimDisabled Path = "/icons/ideavim_disabled.svg"
	PathGitHub          Path = "/icons/github.svg"
	PathTwitter         Path = "/icons/twitter.svg"
	PathYouTrack        Path = "/icons/youtrack.svg"
)

var (
	ErrNilResolver = errors.New("icons: nil resolver")
	ErrNilHandle   = errors.New("icons: resolver returned nil handle")
	ErrUnknownIcon = errors.New("icons: unknown icon name")
)

// Declaration binds an icon name to its bundled resource path.
type Declaration struct {
	Name Name
	Path Path
}

const (
	idxIdeaVim = iota
	idxIdeaVimDisabled
	idxGitHub
	idxTwitter
	idxYouTrack
	iconCount
)

var declarations = [iconCount]Declaration{
	idxIdeaVim:         {Name: NameIdeaVim, Path: PathIdeaVim},
	idxIdeaVimDisabled: {Name: NameIdeaVimDisabled, Path: PathIdeaVimDisabled},
	idxGitHub:          {Name: NameGitHub, Path: PathGitHub},
	idxTwitter:         {Name: NameTwitter, Path: PathTwitter},
	idxYouTrack:        {Name: NameYouTrack, Path: PathYouTrack},
}

// Declarations returns the plugin icons in resolution order.
func Declarations() []Declaration {
	out := make([]Declaration, len(declarations))
	copy(out, declarations[:])
	return out
}

// Resolver is the host icon-resolution service.
type Resolver[H any] interface {
	Resolve(path Path) (H, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc[H any] func(path Path) (H, error)

// Resolve calls f(path).
func (f ResolverFunc[H]) Resolve(path Path) (H, error) {
	return f(path)
}

// Named is a resolved icon together with the declaration it came from.
type Named[H any] struct {
	Name   Name
	Path   Path
	Handle H
}

// Set holds the resolved plugin icons. It is never modified after Load
// returns it.
type Set[H any] struct {
	entries [iconCount]Named[H]
}

func (s *Set[H]) IdeaVim() H         { return s.entries[idxIdeaVim].Handle }
func (s *Set[H]) IdeaVimDisabled() H { return s.entries[idxIdeaVimDisabled].Handle }
func (s *Set[H]) GitHub() H          { return s.entries[idxGitHub].Handle }
func (s *Set[H]) Twitter() H         { return s.entries[idxTwitter].Handle }
func (s *Set[H]) YouTrack() H        { return s.entries[idxYouTrack].Handle }

// All returns every resolved icon in declaration order.
func (s *Set[H]) All() []Named[H] {
	out := make([]Named[H], len(s.entries))
	copy(out, s.entries[:])
	return out
}

// Resolver serves the resolved handles by the paths they were loaded from.
// Other registries can be derived from it without asking the host again.
func (s *Set[H]) Resolver() Resolver[H] {
	return ResolverFunc[H](func(path Path) (H, error) {
		for _, named := range s.entries {
			if named.Path == path {
				return named.Handle, nil
			}
		}
		var zero H
		return zero, fmt.Errorf("%w: no icon loaded from %s", ErrUnknownIcon, path)
	})
}

type loadOptions struct {
	paths map[Name]Path
}

// Option customises Load.
type Option func(*loadOptions)

// WithPath resolves the named icon from path instead of its declared path.
func WithPath(name Name, path Path) Option {
	return func(o *loadOptions) {
		if o.paths == nil {
			o.paths = make(map[Name]Path)
		}
		o.paths[name] = path
	}
}

// Load resolves every declared icon through r, once each and in declaration
// order. The first resolver error stops loading and is returned wrapped, so
// callers can still match the host's error with errors.Is or errors.As.
func Load[H any](r Resolver[H], opts ...Option) (*Set[H], error) {
	if r == nil {
		return nil, ErrNilResolver
	}

	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	for name := range o.paths {
		if !known(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIcon, name)
		}
	}

	set := &Set[H]{}
	for idx, decl := range declarations {
		path := decl.Path
		if override, ok := o.paths[decl.Name]; ok {
			path = override
		}

		handle, err := r.Resolve(path)
		if err != nil {
			return nil, fmt.Errorf("resolve icon %s (%s): %w", decl.Name, path, err)
		}
		if isNil(handle) {
			return nil, fmt.Errorf("resolve icon %s (%s): %w", decl.Name, path, ErrNilHandle)
		}
		set.entries[idx] = Named[H]{Name: decl.Name, Path: path, Handle: handle}
	}
	return set, nil
}

func known(name Name) bool {
	for _, decl := range declarations {
		if decl.Name == name {
			return true
		}
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
