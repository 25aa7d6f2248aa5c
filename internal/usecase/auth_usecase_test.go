package usecase

import (
	"context"
	"testing"
	"time"

	"colpoview/config"
	"colpoview/internal/delivery/dto"
	"colpoview/internal/infrastructure/store"
	"colpoview/internal/service"
	"colpoview/pkg/jwt"
)

func newAuthFixture(t *testing.T, demoEnv bool) (AuthUsecase, store.TokenStore, *store.MemoryStore) {
	t.Helper()

	authenticator, err := service.NewDemoAuthenticator(testLogger(), config.AuthConfig{
		DemoEmail:    "admin@colpoview.com",
		DemoPassword: "123456",
		LoginDelay:   0,
	})
	if err != nil {
		t.Fatalf("NewDemoAuthenticator failed: %v", err)
	}

	s := store.NewMemoryStore()
	session := NewSessionUsecase(testLogger(), s)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	tokens := store.NewMemoryTokenStore()

	return NewAuthUsecase(testLogger(), authenticator, session, jwtService, tokens, "admin@colpoview.com", demoEnv), tokens, s
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	u, _, _ := newAuthFixture(t, true)
	ctx := context.Background()

	cases := []dto.LoginRequest{
		{Email: "admin@colpoview.com", Password: "wrong"},
		{Email: "someone@else.com", Password: "123456"},
	}
	for _, req := range cases {
		if _, err := u.Login(ctx, &req); err != ErrInvalidCredentials {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", req.Email, err)
		}
	}
}

func TestLoginIssuesValidTokens(t *testing.T) {
	u, tokens, _ := newAuthFixture(t, true)
	ctx := context.Background()

	resp, err := u.Login(ctx, &dto.LoginRequest{Email: "admin@colpoview.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("tokens missing: %+v", resp)
	}
	if resp.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expiry: %d", resp.ExpiresIn)
	}

	// Issued tokens must be marked valid in the token store.
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute, RefreshExpiry: 7 * 24 * time.Hour})
	claims, err := jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims.Role != "admin" || claims.TokenType != jwt.AccessToken {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	valid, err := tokens.Valid(ctx, tokenKey(jwt.AccessToken, claims.UserID, claims.TokenID))
	if err != nil || !valid {
		t.Fatalf("access token not marked valid: ok=%v err=%v", valid, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	u, _, _ := newAuthFixture(t, true)
	ctx := context.Background()

	base := dto.RegisterRequest{
		Type:            "invite",
		Name:            "Dr. Nova",
		Email:           "nova@hospital.com",
		CRM:             "99999/SP",
		Specialty:       "Ginecologia",
		Password:        "supersecure",
		ConfirmPassword: "supersecure",
		InviteCode:      "ABC123DEF",
	}

	mismatch := base
	mismatch.ConfirmPassword = "different"
	if _, err := u.Register(ctx, &mismatch); err != ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	short := base
	short.Password, short.ConfirmPassword = "123", "123"
	if _, err := u.Register(ctx, &short); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	noCode := base
	noCode.InviteCode = ""
	if _, err := u.Register(ctx, &noCode); err != ErrInviteCodeRequired {
		t.Fatalf("expected ErrInviteCodeRequired, got %v", err)
	}

	// Admin variant needs no code.
	admin := base
	admin.Type = "admin"
	admin.InviteCode = ""
	if _, err := u.Register(ctx, &admin); err != nil {
		t.Fatalf("admin registration failed: %v", err)
	}
}

func TestRegisterIsAStubThatIssuesTokens(t *testing.T) {
	u, _, s := newAuthFixture(t, true)
	ctx := context.Background()

	resp, err := u.Register(ctx, &dto.RegisterRequest{
		Type:            "invite",
		Name:            "Dr. Nova",
		Email:           "nova@hospital.com",
		CRM:             "99999/SP",
		Specialty:       "Ginecologia",
		Password:        "supersecure",
		ConfirmPassword: "supersecure",
		InviteCode:      "ANYCODE",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("no token issued")
	}
	// Nothing is persisted for the new account.
	if _, ok, _ := s.Load(ctx, store.KeyUserProfile); ok {
		t.Fatal("registration must not write a profile")
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	u, _, _ := newAuthFixture(t, true)
	ctx := context.Background()

	first, err := u.Login(ctx, &dto.LoginRequest{Email: "admin@colpoview.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	second, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if second.AccessToken == "" {
		t.Fatal("no new access token")
	}

	// The old refresh token was revoked by the rotation.
	if _, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken}); err != ErrTokenRevoked {
		t.Fatalf("expected ErrTokenRevoked on reuse, got %v", err)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	u, _, _ := newAuthFixture(t, true)
	ctx := context.Background()

	resp, err := u.Login(ctx, &dto.LoginRequest{Email: "admin@colpoview.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.AccessToken}); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
	if _, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"}); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestLogoutRevokesAndResetsSession(t *testing.T) {
	u, tokens, s := newAuthFixture(t, true)
	ctx := context.Background()

	resp, err := u.Login(ctx, &dto.LoginRequest{Email: "admin@colpoview.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute, RefreshExpiry: 7 * 24 * time.Hour})
	access, _ := jwtService.ValidateToken(resp.AccessToken)
	refresh, _ := jwtService.ValidateToken(resp.RefreshToken)

	if err := u.Logout(ctx, access.TokenID, refresh.TokenID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if valid, _ := tokens.Valid(ctx, tokenKey(jwt.AccessToken, access.UserID, access.TokenID)); valid {
		t.Fatal("access token still valid after logout")
	}
	if valid, _ := tokens.Valid(ctx, tokenKey(jwt.RefreshToken, refresh.UserID, refresh.TokenID)); valid {
		t.Fatal("refresh token still valid after logout")
	}
	if _, ok, _ := s.Load(ctx, store.KeyUserProfile); ok {
		t.Fatal("session store not cleared by logout")
	}
}

func TestCredentialHintOnlyInDemoEnv(t *testing.T) {
	demo, _, _ := newAuthFixture(t, true)
	if hint := demo.CredentialHint(); hint != "Use admin@colpoview.com / 123456" {
		t.Fatalf("unexpected demo hint: %q", hint)
	}

	prod, _, _ := newAuthFixture(t, false)
	if hint := prod.CredentialHint(); hint != "" {
		t.Fatalf("hint must be empty outside demo env, got %q", hint)
	}
}
