package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest covers both registration variants. Type selects between
// an invite-code signup and the first-admin signup.
type RegisterRequest struct {
	Type            string `json:"type" validate:"required,oneof=invite admin"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	CRM             string `json:"crm" validate:"required"`
	Specialty       string `json:"specialty" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	InviteCode      string `json:"invite_code"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserProfileResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CRM         string   `json:"crm"`
	Specialty   string   `json:"specialty"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
