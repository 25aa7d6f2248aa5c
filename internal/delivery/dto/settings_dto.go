package dto

// UpdateProfileRequest is a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	CRM       *string `json:"crm"`
	Specialty *string `json:"specialty"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type CreateInviteRequest struct {
	Role          string `json:"role" validate:"required,oneof=admin user"`
	ExpiresInDays int    `json:"expires_in_days" validate:"omitempty,gte=1,lte=90"`
}

type InviteCodeResponse struct {
	Code      string `json:"code"`
	Role      string `json:"role"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
	Used      bool   `json:"used"`
	UsedBy    string `json:"used_by,omitempty"`
}

type ManagedUserResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type UserManagementResponse struct {
	Users   []ManagedUserResponse `json:"users"`
	Invites []InviteCodeResponse  `json:"invites"`
}

type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}
