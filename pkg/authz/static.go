package authz

import "dalil/pkg/apperr"

// StaticGate treats the listed user ids as admins. Used in handler and use
// case tests.
type StaticGate map[string]bool

func (g StaticGate) RequireAdmin(userID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}
	if !g[userID] {
		return apperr.ErrForbidden
	}
	return nil
}
