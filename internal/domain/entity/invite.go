package entity

// InviteCode gates self-registration to a role. Mock-only: codes are shown
// once, retained in process memory and never persisted.
type InviteCode struct {
	Code      string `json:"code"`
	Role      string `json:"role"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt"`
	Used      bool   `json:"used"`
	UsedBy    string `json:"usedBy,omitempty"`
}

// ManagedUser is a row of the (static, mock) user management listing.
type ManagedUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
