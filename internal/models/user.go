package models

// Roles carried on a User and inside issued tokens.
const (
	RoleUser   = "USER"
	RoleBroker = "BROKER"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`    // don’t expose hash
	Role         string `json:"role"` // USER | BROKER
}
