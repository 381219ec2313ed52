package engine

import (
	"github.com/earthstream/projects-backend/internal/projects/domain"
)

// adminRegistry tracks the admin set and the single super admin.
type adminRegistry struct {
	super  string
	admins map[string]struct{}
}

func newAdminRegistry() *adminRegistry {
	return &adminRegistry{admins: make(map[string]struct{})}
}

func (r *adminRegistry) isAdmin(principal string) bool {
	if principal == "" {
		return false
	}
	if principal == r.super {
		return true
	}
	_, ok := r.admins[principal]
	return ok
}

func (r *adminRegistry) isSuperAdmin(principal string) bool {
	return principal != "" && principal == r.super
}

// CreateSuperAdmin establishes the caller as the single super admin. This is
// a one-time bootstrap; every later call fails with ErrAlreadyInitialized.
func (e *Engine) CreateSuperAdmin(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller == "" {
		return domain.ErrInvalidInput
	}
	if e.admins.super != "" {
		return domain.ErrAlreadyInitialized
	}
	e.admins.super = caller
	return nil
}

// AddAdmin grants the admin role. Super-admin only; adding an existing admin
// is a no-op success.
func (e *Engine) AddAdmin(caller, principal string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admins.isSuperAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if principal == "" {
		return domain.ErrInvalidInput
	}
	e.admins.admins[principal] = struct{}{}
	return nil
}

// RemoveAdmin revokes the admin role. Super-admin only; removing a
// non-member is a no-op success, removing the super admin is refused.
func (e *Engine) RemoveAdmin(caller, principal string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admins.isSuperAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if principal == e.admins.super {
		return domain.ErrUnauthorized
	}
	delete(e.admins.admins, principal)
	return nil
}

// IsAdmin reports whether the principal holds the admin role. The super
// admin counts as an admin.
func (e *Engine) IsAdmin(principal string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admins.isAdmin(principal)
}

// IsSuperAdmin reports whether the principal is the super admin.
func (e *Engine) IsSuperAdmin(principal string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admins.isSuperAdmin(principal)
}
