package theme

import (
	"sync"

	"github.com/pdlabs/pdgame/internal/model"
)

// Applier is the display boundary: applying a theme toggles a single
// marker the presentation layer styles from. Active reports the marker's
// current state, zero value when nothing has been applied yet.
type Applier interface {
	Apply(theme model.Theme)
	Active() model.Theme
}

// SystemScheme is the OS-level color-scheme preference signal. Subscribe
// registers a callback for preference changes and returns an unsubscribe
// function; callbacks may fire at any time from the notifying goroutine.
type SystemScheme interface {
	Current() model.Theme
	Subscribe(fn func(model.Theme)) (unsubscribe func())
}

// Marker is an in-process Applier holding the applied theme
type Marker struct {
	mu    sync.RWMutex
	theme model.Theme
}

// NewMarker creates a new Marker with no theme applied
func NewMarker() *Marker {
	return &Marker{}
}

var _ Applier = (*Marker)(nil)

func (m *Marker) Apply(theme model.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
}

func (m *Marker) Active() model.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// StaticScheme is a SystemScheme with an explicitly set preference. Set
// notifies all subscribers synchronously.
type StaticScheme struct {
	mu          sync.Mutex
	theme       model.Theme
	subscribers map[int]func(model.Theme)
	nextID      int
}

// NewStaticScheme creates a StaticScheme with the given initial preference
func NewStaticScheme(theme model.Theme) *StaticScheme {
	if !model.ValidTheme(theme) {
		theme = model.ThemeLight
	}
	return &StaticScheme{
		theme:       theme,
		subscribers: make(map[int]func(model.Theme)),
	}
}

var _ SystemScheme = (*StaticScheme)(nil)

func (s *StaticScheme) Current() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *StaticScheme) Subscribe(fn func(model.Theme)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Set changes the preference and notifies subscribers
func (s *StaticScheme) Set(theme model.Theme) {
	s.mu.Lock()
	s.theme = theme
	fns := make([]func(model.Theme), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(theme)
	}
}
