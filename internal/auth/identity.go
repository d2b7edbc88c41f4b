package auth

// Role is the closed set of user roles. The numeric values are part of
// the public API (role_id in JSON), so they must not be reordered.
type Role int

const (
	RoleAdmin         Role = 1
	RoleBranchManager Role = 2
	RoleSuperAdmin    Role = 3
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBranchManager, RoleSuperAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleBranchManager:
		return "branch_manager"
	case RoleSuperAdmin:
		return "super_admin"
	default:
		return "unknown"
	}
}

// Identity is the authenticated caller for one request. It is built by
// the auth middleware from the verified token and passed explicitly
// into every service call; request bodies never supply these fields.
type Identity struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	Role       Role   `json:"role_id"`
	BusinessID int    `json:"business_id"`
	// BranchID is set only for branch managers currently handling a
	// branch; nil otherwise.
	BranchID *int `json:"branch_id"`
}
