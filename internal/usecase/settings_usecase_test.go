package usecase

import (
	"context"
	"testing"

	"colpoview/config"
	"colpoview/internal/delivery/dto"
	"colpoview/internal/infrastructure/store"
	"colpoview/internal/service"
)

func newSettingsFixture(t *testing.T) SettingsUsecase {
	t.Helper()

	authenticator, err := service.NewDemoAuthenticator(testLogger(), config.AuthConfig{
		DemoEmail:    "ana.silva@hospital.com",
		DemoPassword: "123456",
		LoginDelay:   0,
	})
	if err != nil {
		t.Fatalf("NewDemoAuthenticator failed: %v", err)
	}

	session := NewSessionUsecase(testLogger(), store.NewMemoryStore())
	return NewSettingsUsecase(testLogger(), session, authenticator)
}

func TestSettingsUpdateProfile(t *testing.T) {
	u := newSettingsFixture(t)

	resp, err := u.UpdateProfile(context.Background(), &dto.UpdateProfileRequest{
		Name: strPtr("Dr. Ana Souza"),
		CRM:  strPtr("54321/RJ"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if resp.Name != "Dr. Ana Souza" || resp.CRM != "54321/RJ" {
		t.Fatalf("profile not updated: %+v", resp)
	}

	if _, err := u.UpdateProfile(context.Background(), &dto.UpdateProfileRequest{Email: strPtr("bad")}); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestChangePasswordValidation(t *testing.T) {
	u := newSettingsFixture(t)
	ctx := context.Background()

	if err := u.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: "123456",
		NewPassword:     "newpassword",
		ConfirmPassword: "different",
	}); err != ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if err := u.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: "123456",
		NewPassword:     "123",
		ConfirmPassword: "123",
	}); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	if err := u.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
		ConfirmPassword: "newpassword",
	}); err != ErrWrongCurrentPassword {
		t.Fatalf("expected ErrWrongCurrentPassword, got %v", err)
	}
}

func TestChangePasswordMutatesNothing(t *testing.T) {
	u := newSettingsFixture(t)
	ctx := context.Background()

	if err := u.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: "123456",
		NewPassword:     "newpassword",
		ConfirmPassword: "newpassword",
	}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	// The old password still works, nothing was changed.
	if err := u.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: "123456",
		NewPassword:     "anotherpass",
		ConfirmPassword: "anotherpass",
	}); err != nil {
		t.Fatalf("old password rejected after mock change: %v", err)
	}
}

func TestCreateInviteCodeShape(t *testing.T) {
	u := newSettingsFixture(t)

	resp, err := u.CreateInvite(context.Background(), &dto.CreateInviteRequest{Role: "user"})
	if err != nil {
		t.Fatalf("CreateInvite failed: %v", err)
	}

	if len(resp.Code) != 12 {
		t.Fatalf("expected 12-char code, got %q", resp.Code)
	}
	for _, c := range resp.Code {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("code contains %q, want uppercase alphanumeric", c)
		}
	}
	if resp.Role != "user" || resp.Used {
		t.Fatalf("unexpected invite: %+v", resp)
	}
	if resp.CreatedBy != "Dr. Ana Silva" {
		t.Fatalf("invite not attributed to current profile: %+v", resp)
	}
}

func TestListUserManagementIncludesGeneratedInvites(t *testing.T) {
	u := newSettingsFixture(t)
	ctx := context.Background()

	base := u.ListUserManagement(ctx)
	if len(base.Users) != 3 {
		t.Fatalf("expected 3 mock users, got %d", len(base.Users))
	}
	if len(base.Invites) != 2 {
		t.Fatalf("expected 2 mock invites, got %d", len(base.Invites))
	}

	created, err := u.CreateInvite(ctx, &dto.CreateInviteRequest{Role: "admin", ExpiresInDays: 3})
	if err != nil {
		t.Fatalf("CreateInvite failed: %v", err)
	}

	after := u.ListUserManagement(ctx)
	if len(after.Invites) != 3 {
		t.Fatalf("generated invite missing from listing: %d", len(after.Invites))
	}
	last := after.Invites[len(after.Invites)-1]
	if last.Code != created.Code || last.Role != "admin" {
		t.Fatalf("listed invite diverges from created one: %+v", last)
	}
}
