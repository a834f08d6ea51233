package rbac

import (
	"errors"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

// =========================================
// Helper
// =========================================

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := NewService(NewStaticRepository(), enforcer)
	assert.NoError(t, err)
	return svc
}

type brokenRepo struct{}

func (brokenRepo) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return nil, errors.New("policy store down")
}

func (brokenRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return nil, nil
}

// =========================================
// TEST: Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"STAFF", "leave", "create", true},
		{"STAFF", "leave", "read_own", true},
		{"STAFF", "leave", "approve", false},
		{"STAFF", "employee", "read", false},
		{"MANAGER", "leave", "create", true},
		{"MANAGER", "leave", "approve", true},
		{"MANAGER", "leave", "read_all", false},
		{"MANAGER", "leave", "delete_all", false},
		{"HR", "leave", "approve", true},
		{"HR", "leave", "update_own", true},
		{"HR", "leave", "export", true},
		{"HR", "employee", "import", true},
		{"", "leave", "read_own", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.resource+":"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	staff, err := svc.PermissionsForRole("STAFF")
	assert.NoError(t, err)
	assert.Equal(t, []domain.PermissionResponse{
		{Resource: "leave", Action: "create"},
		{Resource: "leave", Action: "delete"},
		{Resource: "leave", Action: "read_own"},
		{Resource: "leave", Action: "update_own"},
	}, staff)

	hr, err := svc.PermissionsForRole("HR")
	assert.NoError(t, err)
	assert.Len(t, hr, 12)
	assert.Contains(t, hr, domain.PermissionResponse{Resource: "leave", Action: "approve"})
}

func TestRBACService_LoadPolicyError(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	_, err = NewService(brokenRepo{}, enforcer)

	assert.EqualError(t, err, "policy store down")
}
