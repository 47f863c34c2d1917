package theme

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/storage"
)

// Service resolves and persists the display theme. Resolution order is
// stored preference, then OS-level preference, then the applied marker,
// defaulting to light.
type Service struct {
	store   storage.Store
	applier Applier
	system  SystemScheme
	logger  *slog.Logger
}

// New creates a new theme service
func New(store storage.Store, applier Applier, system SystemScheme, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		applier: applier,
		system:  system,
		logger:  logger,
	}
}

// Initialize resolves the startup theme. A validly-valued stored
// preference wins; otherwise the system preference is applied and
// persisted immediately.
func (s *Service) Initialize(ctx context.Context) (model.Theme, error) {
	stored, err := s.storedTheme(ctx)
	if err != nil {
		return "", err
	}
	if stored != "" {
		s.applier.Apply(stored)
		return stored, nil
	}

	theme := s.system.Current()
	if !model.ValidTheme(theme) {
		theme = model.ThemeLight
	}

	s.applier.Apply(theme)
	if err := s.store.Set(ctx, storage.KeyTheme, string(theme)); err != nil {
		return "", err
	}
	return theme, nil
}

// Current returns the stored theme if valid, else the applied marker
// state, defaulting to light
func (s *Service) Current(ctx context.Context) (model.Theme, error) {
	stored, err := s.storedTheme(ctx)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}

	if active := s.applier.Active(); model.ValidTheme(active) {
		return active, nil
	}
	return model.ThemeLight, nil
}

// Set applies and persists the given theme
func (s *Service) Set(ctx context.Context, theme model.Theme) error {
	if !model.ValidTheme(theme) {
		return model.ErrInvalidTheme
	}

	s.applier.Apply(theme)
	return s.store.Set(ctx, storage.KeyTheme, string(theme))
}

// Toggle flips the current theme and returns the new value
func (s *Service) Toggle(ctx context.Context) (model.Theme, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}

	next := current.Opposite()
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// ListenForSystemChanges follows OS-level preference changes while
// subscribed. Each change is written through synchronously with no
// debouncing; rapid flips cause redundant writes but no corruption since
// each write fully overwrites the one key.
func (s *Service) ListenForSystemChanges(ctx context.Context) (unsubscribe func()) {
	return s.system.Subscribe(func(theme model.Theme) {
		if err := s.Set(ctx, theme); err != nil {
			s.logger.Warn("failed to persist system theme change",
				slog.String("theme", string(theme)),
				slog.String("error", err.Error()),
			)
		}
	})
}

// storedTheme returns the stored preference, or empty when absent or not
// a valid theme value. An invalid stored value is recovered by treating it
// as absent.
func (s *Service) storedTheme(ctx context.Context) (model.Theme, error) {
	data, err := s.store.Get(ctx, storage.KeyTheme)
	if err != nil {
		if errors.Is(err, model.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}

	theme := model.Theme(data)
	if !model.ValidTheme(theme) {
		s.logger.Warn("stored theme is invalid, ignoring", slog.String("value", data))
		return "", nil
	}
	return theme, nil
}
