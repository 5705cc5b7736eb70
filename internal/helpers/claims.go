package helpers

import "strings"

// AdminContextKey holds *AdminClaims for authenticated requests.
const AdminContextKey = "admin"

// AdminClaims is the authenticated admin placed in the request context.
type AdminClaims struct {
	*CustomClaims
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

func NewAdminClaims(c *CustomClaims) *AdminClaims {
	return &AdminClaims{
		CustomClaims: c,
		UserID:       c.Subject,
		Email:        c.Email,
	}
}

// IsAllowed reports whether the email is on the whitelist. An empty list
// admits every authenticated account.
func (ac *AdminClaims) IsAllowed(whitelist []string) bool {
	if len(whitelist) == 0 {
		return true
	}
	for _, e := range whitelist {
		if strings.EqualFold(strings.TrimSpace(e), ac.Email) {
			return true
		}
	}
	return false
}
