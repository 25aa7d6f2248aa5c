package usecase

import (
	"context"
	"sync"

	"colpoview/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

// ThemeUsecase holds the persisted dark-mode flag. Default is light when the
// stored value is absent or unparseable.
type ThemeUsecase interface {
	IsDarkMode(ctx context.Context) bool
	Toggle(ctx context.Context) bool
}

type themeUsecase struct {
	mu       sync.Mutex
	log      *logrus.Logger
	store    store.Store
	darkMode bool
}

func NewThemeUsecase(log *logrus.Logger, s store.Store) ThemeUsecase {
	u := &themeUsecase{log: log, store: s}

	var saved bool
	if store.LoadJSON(context.Background(), s, store.KeyDarkMode, &saved) {
		u.darkMode = saved
	}

	return u
}

func (u *themeUsecase) IsDarkMode(_ context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.darkMode
}

// Toggle flips the flag and persists every flip.
func (u *themeUsecase) Toggle(ctx context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.darkMode = !u.darkMode
	if err := store.SaveJSON(ctx, u.store, store.KeyDarkMode, u.darkMode); err != nil {
		u.log.Warnf("Failed to persist theme preference: %+v", err)
	}
	return u.darkMode
}
