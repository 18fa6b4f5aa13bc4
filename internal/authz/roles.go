package authz

const (
	RolePM    = 10
	RoleAdmin = 50
)

func IsAdmin(roleID int) bool {
	return roleID == RoleAdmin
}
