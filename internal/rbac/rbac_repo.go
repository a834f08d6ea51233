package rbac

import "go-leave/internal/session"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRoleInheritance() ([]RoleInheritanceRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)
}

type RoleInheritanceRow struct {
	Role   string
	Parent string
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// staticRepository holds the fixed three-role policy. Managers inherit
// everything staff can do and HR inherits everything managers can do.
type staticRepository struct{}

func NewStaticRepository() Repository {
	return staticRepository{}
}

func (staticRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return []RoleInheritanceRow{
		{Role: string(session.RoleManager), Parent: string(session.RoleStaff)},
		{Role: string(session.RoleHR), Parent: string(session.RoleManager)},
	}, nil
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	staff := string(session.RoleStaff)
	manager := string(session.RoleManager)
	hr := string(session.RoleHR)

	return []RolePermissionRow{
		{Role: staff, Resource: "leave", Action: "create"},
		{Role: staff, Resource: "leave", Action: "read_own"},
		{Role: staff, Resource: "leave", Action: "update_own"},
		{Role: staff, Resource: "leave", Action: "delete"},

		{Role: manager, Resource: "leave", Action: "approve"},

		{Role: hr, Resource: "leave", Action: "read_all"},
		{Role: hr, Resource: "leave", Action: "export"},
		{Role: hr, Resource: "leave", Action: "delete_all"},
		{Role: hr, Resource: "employee", Action: "read"},
		{Role: hr, Resource: "employee", Action: "create"},
		{Role: hr, Resource: "employee", Action: "delete"},
		{Role: hr, Resource: "employee", Action: "import"},
	}, nil
}
