package entity

// Role names
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Permission tags carried by a profile.
const (
	PermissionManagePatients = "manage_patients"
	PermissionManageUsers    = "manage_users"
	PermissionViewAnalytics  = "view_analytics"
	PermissionManageSettings = "manage_settings"
)

// UserProfile is the single current session record. Exactly one instance is
// "current" at any time; it is owned by the session usecase.
type UserProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CRM         string   `json:"crm"`
	Specialty   string   `json:"specialty"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// DefaultUserProfile returns the built-in profile used on first load and
// after logout.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		ID:        "1",
		Name:      "Dr. Ana Silva",
		CRM:       "12345/SP",
		Specialty: "Ginecologia e Obstetrícia",
		Email:     "ana.silva@hospital.com",
		Role:      RoleAdmin,
		Permissions: []string{
			PermissionManagePatients,
			PermissionManageUsers,
			PermissionViewAnalytics,
			PermissionManageSettings,
		},
	}
}

// Clone returns a copy with its own permissions slice.
func (u UserProfile) Clone() UserProfile {
	out := u
	out.Permissions = make([]string, len(u.Permissions))
	copy(out.Permissions, u.Permissions)
	return out
}
