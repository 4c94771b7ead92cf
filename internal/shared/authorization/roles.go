package authorization

type UserRole string

const (
	// RoleAdmin is the global operator. It bypasses every subscription, entitlement and quota gate.
	RoleAdmin       UserRole = "admin"
	RoleAdminTenant UserRole = "admin_tenant"
	RoleUser        UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleAdminTenant || r == RoleUser
}

// ParseUserRole falls back to RoleUser for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
