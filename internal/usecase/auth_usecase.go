package usecase

import (
	"context"
	"errors"
	"fmt"

	"colpoview/internal/delivery/dto"
	"colpoview/internal/infrastructure/store"
	"colpoview/internal/service"
	"colpoview/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInviteCodeRequired = errors.New("invite code is required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

const minPasswordLength = 6

// AuthUsecase gates access to the rest of the application. Login checks the
// one seeded demo credential through the pluggable Authenticator;
// registration validates its form and then succeeds unconditionally. No
// account record is created or persisted anywhere; both paths are stubs by
// contract and only ever issue session tokens.
type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	CredentialHint() string
}

type authUsecase struct {
	log           *logrus.Logger
	authenticator service.Authenticator
	session       SessionUsecase
	jwtService    *jwt.JWTService
	tokens        store.TokenStore
	demoEmail     string
	demoEnv       bool
}

func NewAuthUsecase(
	log *logrus.Logger,
	authenticator service.Authenticator,
	session SessionUsecase,
	jwtService *jwt.JWTService,
	tokens store.TokenStore,
	demoEmail string,
	demoEnv bool,
) AuthUsecase {
	return &authUsecase{
		log:           log,
		authenticator: authenticator,
		session:       session,
		jwtService:    jwtService,
		tokens:        tokens,
		demoEmail:     demoEmail,
		demoEnv:       demoEnv,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := u.authenticator.Authenticate(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrCredentialMismatch) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Authenticator failed: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx)
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Type == "invite" && req.InviteCode == "" {
		return nil, ErrInviteCodeRequired
	}

	// Registration stub: the form is validated and then always succeeds
	// into the logged-in state. Nothing is stored.
	u.log.WithFields(logrus.Fields{
		"type":  req.Type,
		"email": req.Email,
	}).Info("Mock registration accepted")

	return u.issueTokens(ctx)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := tokenKey(jwt.RefreshToken, claims.UserID, claims.TokenID)
	valid, err := u.tokens.Valid(ctx, refreshKey)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !valid {
		return nil, ErrTokenRevoked
	}

	if err := u.tokens.Revoke(ctx, refreshKey); err != nil {
		u.log.Warnf("Failed to revoke old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx)
}

// Logout revokes the session tokens and resets the user context, which also
// clears the theme preference from the store.
func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	profile := u.session.Current(ctx)

	keys := []string{tokenKey(jwt.AccessToken, profile.ID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, tokenKey(jwt.RefreshToken, profile.ID, refreshTokenID))
	}
	if err := u.tokens.Revoke(ctx, keys...); err != nil {
		u.log.Warnf("Failed to revoke tokens: %+v", err)
		return err
	}

	return u.session.Logout(ctx)
}

// CredentialHint is the inline hint shown next to a failed login. Outside
// demo environments the seeded pair must not leak.
func (u *authUsecase) CredentialHint() string {
	if u.demoEnv {
		return fmt.Sprintf("Use %s / 123456", u.demoEmail)
	}
	return ""
}

func (u *authUsecase) issueTokens(ctx context.Context) (*dto.TokenResponse, error) {
	profile := u.session.Current(ctx)

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokens.Mark(ctx, tokenKey(jwt.AccessToken, profile.ID, accessTokenID), u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.tokens.Mark(ctx, tokenKey(jwt.RefreshToken, profile.ID, refreshTokenID), u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// tokenKey builds the validity key for one issued token.
func tokenKey(tokenType jwt.TokenType, userID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID, tokenID)
}
