package middleware

import "github.com/favboard/favboard-api/internal/core/domain"

// Policy is an access rule evaluated against a resolved caller.
type Policy uint8

const (
	// PolicyAuthenticated admits any resolved caller.
	PolicyAuthenticated Policy = iota + 1
	// PolicySelfOrAdmin admits admins, and callers whose id equals the :id route parameter.
	PolicySelfOrAdmin
	// PolicyAdminOnly admits admins.
	PolicyAdminOnly
)

func (p Policy) String() string {
	switch p {
	case PolicyAuthenticated:
		return "authenticated"
	case PolicySelfOrAdmin:
		return "self_or_admin"
	case PolicyAdminOnly:
		return "admin_only"
	default:
		return "unknown"
	}
}

// Allows reports whether identity passes policy for a route whose :id
// parameter is targetID. Unknown policies deny.
func Allows(policy Policy, identity *domain.User, targetID string) bool {
	if identity == nil {
		return false
	}
	switch policy {
	case PolicyAuthenticated:
		return true
	case PolicySelfOrAdmin:
		return identity.IsAdmin() || (targetID != "" && identity.ID == targetID)
	case PolicyAdminOnly:
		return identity.IsAdmin()
	default:
		return false
	}
}
