package domain

import "time"

// Session is the server-side record of an authenticated login. It is created
// on login, stored keyed by its ID, and deleted on logout; deleting it
// revokes the matching JWT even before the token expires. Everything outside
// the auth service treats sessions as read-only.
type Session struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Email       string       `json:"email"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	ShopID      string       `json:"shop_id,omitempty"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// HasRole reports whether the session carries exactly the given role.
func (s *Session) HasRole(r Role) bool {
	return s.Role == r
}

// HasAnyRole reports whether the session's role is one of the given roles.
func (s *Session) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// HasPermission reports whether the session carries the given permission.
func (s *Session) HasPermission(p Permission) bool {
	for _, sp := range s.Permissions {
		if sp == p {
			return true
		}
	}
	return false
}
