package authorization

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID   string
	TenantID uint
	Role     UserRole
}

// IsOperator reports whether the actor is the global operator that bypasses every gate.
func (a Actor) IsOperator() bool {
	return a.Role.IsAdmin()
}
