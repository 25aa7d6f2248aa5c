package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"

	"colpoview/internal/domain/entity"
	"colpoview/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidEmail = errors.New("email is not well formed")
)

// ProfileUpdate is a partial-field update; nil fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	CRM       *string
	Specialty *string
	Email     *string
}

// SessionUsecase owns the single current UserProfile. It is the only
// component that mutates the profile or its store key.
type SessionUsecase interface {
	Current(ctx context.Context) entity.UserProfile
	UpdateProfile(ctx context.Context, update ProfileUpdate) (entity.UserProfile, error)
	Logout(ctx context.Context) error
	IsAdmin(ctx context.Context) bool
	HasPermission(ctx context.Context, permission string) bool
}

type sessionUsecase struct {
	mu      sync.Mutex
	log     *logrus.Logger
	store   store.Store
	profile entity.UserProfile
}

// NewSessionUsecase loads the profile from the store once, falling back to
// the built-in default when the key is absent or unreadable.
func NewSessionUsecase(log *logrus.Logger, s store.Store) SessionUsecase {
	u := &sessionUsecase{
		log:     log,
		store:   s,
		profile: entity.DefaultUserProfile(),
	}

	var saved entity.UserProfile
	if store.LoadJSON(context.Background(), s, store.KeyUserProfile, &saved) {
		u.profile = saved
	}

	return u
}

func (u *sessionUsecase) Current(_ context.Context) entity.UserProfile {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.profile.Clone()
}

func (u *sessionUsecase) UpdateProfile(ctx context.Context, update ProfileUpdate) (entity.UserProfile, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	merged := u.profile.Clone()
	if update.Name != nil {
		merged.Name = strings.TrimSpace(*update.Name)
	}
	if update.CRM != nil {
		merged.CRM = *update.CRM
	}
	if update.Specialty != nil {
		merged.Specialty = *update.Specialty
	}
	if update.Email != nil {
		merged.Email = strings.TrimSpace(*update.Email)
	}

	if merged.Name == "" {
		return entity.UserProfile{}, ErrEmptyName
	}
	if merged.Email != "" {
		if _, err := mail.ParseAddress(merged.Email); err != nil {
			return entity.UserProfile{}, ErrInvalidEmail
		}
	}

	u.profile = merged
	if err := store.SaveJSON(ctx, u.store, store.KeyUserProfile, u.profile); err != nil {
		u.log.Warnf("Failed to persist user profile: %+v", err)
	}

	return u.profile.Clone(), nil
}

// Logout clears the profile key and, deliberately, the theme preference too.
// The in-memory profile resets to the built-in default.
func (u *sessionUsecase) Logout(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.Clear(ctx, store.KeyUserProfile); err != nil {
		u.log.Warnf("Failed to clear user profile key: %+v", err)
		return err
	}
	if err := u.store.Clear(ctx, store.KeyDarkMode); err != nil {
		u.log.Warnf("Failed to clear dark mode key: %+v", err)
		return err
	}

	u.profile = entity.DefaultUserProfile()
	return nil
}

func (u *sessionUsecase) IsAdmin(_ context.Context) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.profile.Role == entity.RoleAdmin
}

func (u *sessionUsecase) HasPermission(_ context.Context, permission string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, p := range u.profile.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
