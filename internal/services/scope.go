package services

import "perfumery/internal/models"

// Scope is the per-request context of an owner-scoped operation: who is
// signed in and whose resources the request path addresses.
type Scope struct {
	Identity models.Identity
	OwnerID  string
}

// Authorize allows the request only when the signed-in user is the owner
// named by the path.
func Authorize(identity models.Identity, pathOwnerID string) error {
	if identity.UserID == "" || identity.UserID != pathOwnerID {
		return ErrForbidden
	}
	return nil
}

// Authorize checks the scope itself.
func (s Scope) Authorize() error {
	return Authorize(s.Identity, s.OwnerID)
}

// owns re-checks a loaded resource against both the path owner and the
// session identity.
func (s Scope) owns(resourceOwnerID string) bool {
	return resourceOwnerID == s.OwnerID && resourceOwnerID == s.Identity.UserID
}
