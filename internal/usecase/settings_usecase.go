package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"colpoview/internal/converter"
	"colpoview/internal/delivery/dto"
	"colpoview/internal/domain/entity"
	"colpoview/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrWrongCurrentPassword = errors.New("current password is incorrect")

// SettingsUsecase backs the settings screen. Password change and the user
// management listing are mocks by contract: the password check runs against
// the seeded demo credential and nothing is mutated; generated invite codes
// live only in process memory for the session's listing.
type SettingsUsecase interface {
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	CreateInvite(ctx context.Context, req *dto.CreateInviteRequest) (*dto.InviteCodeResponse, error)
	ListUserManagement(ctx context.Context) *dto.UserManagementResponse
}

type settingsUsecase struct {
	mu            sync.Mutex
	log           *logrus.Logger
	session       SessionUsecase
	authenticator service.Authenticator
	invites       []entity.InviteCode
	now           func() time.Time
}

func NewSettingsUsecase(log *logrus.Logger, session SessionUsecase, authenticator service.Authenticator) SettingsUsecase {
	return &settingsUsecase{
		log:           log,
		session:       session,
		authenticator: authenticator,
		now:           time.Now,
	}
}

func (u *settingsUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	profile, err := u.session.UpdateProfile(ctx, ProfileUpdate{
		Name:      req.Name,
		CRM:       req.CRM,
		Specialty: req.Specialty,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}
	return converter.ProfileToResponse(profile), nil
}

// ChangePassword validates like the real thing and then changes nothing.
func (u *settingsUsecase) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	profile := u.session.Current(ctx)
	if err := u.authenticator.Authenticate(ctx, profile.Email, req.CurrentPassword); err != nil {
		if errors.Is(err, service.ErrCredentialMismatch) {
			return ErrWrongCurrentPassword
		}
		return err
	}

	u.log.Info("Mock password change accepted, no credential mutated")
	return nil
}

// CreateInvite generates a random 12-character uppercase alphanumeric code,
// shown once and kept only for this process's listing.
func (u *settingsUsecase) CreateInvite(ctx context.Context, req *dto.CreateInviteRequest) (*dto.InviteCodeResponse, error) {
	expiresInDays := req.ExpiresInDays
	if expiresInDays == 0 {
		expiresInDays = 7
	}

	code, err := randomInviteCode(12)
	if err != nil {
		u.log.Warnf("Failed to generate invite code: %+v", err)
		return nil, err
	}

	profile := u.session.Current(ctx)
	invite := entity.InviteCode{
		Code:      code,
		Role:      req.Role,
		CreatedBy: profile.Name,
		CreatedAt: u.now().Format("2006-01-02"),
		ExpiresAt: u.now().AddDate(0, 0, expiresInDays).Format("2006-01-02"),
	}

	u.mu.Lock()
	u.invites = append(u.invites, invite)
	u.mu.Unlock()

	return inviteToResponse(invite), nil
}

// mockUsers and mockInvites are the static listing rows from the source.
func mockUsers() []entity.ManagedUser {
	return []entity.ManagedUser{
		{ID: 1, Name: "Dr. Ana Silva", Email: "ana.silva@hospital.com", Role: entity.RoleAdmin, Status: "Ativo"},
		{ID: 2, Name: "Dr. João Santos", Email: "joao.santos@hospital.com", Role: entity.RoleUser, Status: "Ativo"},
		{ID: 3, Name: "Enf. Maria Costa", Email: "maria.costa@hospital.com", Role: entity.RoleUser, Status: "Inativo"},
	}
}

func mockInvites() []entity.InviteCode {
	return []entity.InviteCode{
		{Code: "ABC123DEF", Role: entity.RoleUser, CreatedAt: "2024-01-15", ExpiresAt: "2024-01-22", Used: false},
		{Code: "XYZ789GHI", Role: entity.RoleAdmin, CreatedAt: "2024-01-10", ExpiresAt: "2024-01-17", Used: true},
	}
}

// ListUserManagement returns the static mock users and invites plus any
// codes generated this session.
func (u *settingsUsecase) ListUserManagement(_ context.Context) *dto.UserManagementResponse {
	resp := &dto.UserManagementResponse{}
	for _, user := range mockUsers() {
		resp.Users = append(resp.Users, dto.ManagedUserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		})
	}
	for _, invite := range mockInvites() {
		resp.Invites = append(resp.Invites, *inviteToResponse(invite))
	}

	u.mu.Lock()
	for _, invite := range u.invites {
		resp.Invites = append(resp.Invites, *inviteToResponse(invite))
	}
	u.mu.Unlock()

	return resp
}

func inviteToResponse(invite entity.InviteCode) *dto.InviteCodeResponse {
	return &dto.InviteCodeResponse{
		Code:      invite.Code,
		Role:      invite.Role,
		CreatedBy: invite.CreatedBy,
		CreatedAt: invite.CreatedAt,
		ExpiresAt: invite.ExpiresAt,
		Used:      invite.Used,
		UsedBy:    invite.UsedBy,
	}
}

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomInviteCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
