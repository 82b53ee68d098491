package types

// Role identifies what a signed-in user is allowed to do in the storefront.
type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleArtisan   Role = "artisan"
	RoleMarketing Role = "marketing"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the known storefront roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleArtisan, RoleMarketing, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
