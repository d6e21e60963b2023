package model

const (
	RoleParent    = "Parent"
	RoleTeacher   = "Teacher"
	RoleAdmin     = "Admin"
	RoleLibrarian = "Librarian"

	ModeHome        = "home"
	ModeInstitution = "institution"
)

var (
	Roles = []string{RoleParent, RoleTeacher, RoleAdmin, RoleLibrarian}
	Modes = []string{ModeHome, ModeInstitution}
)

func IsValidRole(role string) bool {
	return contains(Roles, role)
}

func IsValidMode(mode string) bool {
	return contains(Modes, mode)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,min=3,max=254" example:"parent@kiddoland.local"`
	Password string `json:"password" binding:"required,min=6,max=128" example:"Parent123!"`
	Mode     string `json:"mode" binding:"required,oneof=home institution" example:"home"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,min=3,max=254" example:"parent@kiddoland.local"`
	Password string `json:"password" binding:"required,min=6,max=128" example:"Parent123!"`
	Mode     string `json:"mode" binding:"required,oneof=home institution" example:"home"`
	Role     string `json:"role" binding:"omitempty,oneof=Parent Teacher Admin Librarian" example:"Parent"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"3600"`
	Role        string `json:"role" example:"Parent"`
	Mode        string `json:"mode" example:"home"`
}

// AuthUser is the authenticated caller attached to a request.
type AuthUser struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Mode   string `json:"mode"`
}

// User is a login account held in memory for the process lifetime.
// Exactly one of PasswordHash (bcrypt) or PBKDF2Hash/PBKDF2Salt is set.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	PBKDF2Hash   []byte
	PBKDF2Salt   []byte
	Role         string
	Modes        []string
}

// AllowsMode reports whether the user may sign in to mode.
// A user without explicit modes may use any of them.
func (u *User) AllowsMode(mode string) bool {
	return len(u.Modes) == 0 || contains(u.Modes, mode)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
