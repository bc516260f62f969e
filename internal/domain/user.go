package domain

import "time"

// Roles a user may hold. Regular users hold neither; the two are not
// mutually exclusive.
const (
	RoleOwner     = "owner"
	RoleModerator = "moderator"
)

// User is a registered account. Roles are resolved once per request by the
// auth middleware and carried here, never re-queried downstream.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRole reports whether the user holds the given role. A nil user
// (anonymous request) holds no roles.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsModerator() bool { return u.HasRole(RoleModerator) }

func (u *User) IsOwner() bool { return u.HasRole(RoleOwner) }

// ValidRole reports whether role is grantable.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleModerator
}
