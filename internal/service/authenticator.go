package service

import (
	"context"
	"errors"
	"time"

	"colpoview/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrCredentialMismatch = errors.New("credential mismatch")

// Authenticator is the pluggable credential check. The application ships
// with a stub only; a real identity backend would implement this interface
// without touching the auth usecase.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// demoAuthenticator accepts exactly one seeded credential pair after a fixed
// artificial delay that stands in for a backend round trip.
type demoAuthenticator struct {
	log   *logrus.Logger
	email string
	hash  []byte
	delay time.Duration
}

func NewDemoAuthenticator(log *logrus.Logger, cfg config.AuthConfig) (Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &demoAuthenticator{
		log:   log,
		email: cfg.DemoEmail,
		hash:  hash,
		delay: cfg.LoginDelay,
	}, nil
}

func (a *demoAuthenticator) Authenticate(ctx context.Context, email, password string) error {
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if email != a.email {
		return ErrCredentialMismatch
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}
