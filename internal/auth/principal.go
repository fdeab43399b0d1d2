package auth

import "context"

type ctxKey string

const principalKey ctxKey = "auth_principal"

// Principal holds the identity resolved from a validated bearer token.
type Principal struct {
	UserID   string
	Username string
	IsDoctor bool
	IsNurse  bool
}

// IsStaff reports whether the principal is medical staff (doctor or nurse).
func (p *Principal) IsStaff() bool {
	return p.IsDoctor || p.IsNurse
}

// Roles derives the role names used by the permission map. Every
// authenticated user carries STAFF; DOCTOR and NURSE come from the flags.
func (p *Principal) Roles() []string {
	roles := []string{"STAFF"}
	if p.IsDoctor {
		roles = append(roles, "DOCTOR")
	}
	if p.IsNurse {
		roles = append(roles, "NURSE")
	}
	return roles
}

// ContextWithPrincipal stores the principal on the context.
func ContextWithPrincipal(ctx context.Context, pr *Principal) context.Context {
	return context.WithValue(ctx, principalKey, pr)
}

// FromContext extracts the Principal from context.
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey).(*Principal)
	return pr, ok
}
