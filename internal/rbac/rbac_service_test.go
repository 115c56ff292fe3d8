package rbac_test

import (
	"testing"

	"hr-backend/internal/domain"
	"hr-backend/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

type fakeRBACRepo struct {
	employeeRoles []rbac.EmployeeRoleRow
	rolePerms     []rbac.RolePermissionRow
}

func (f *fakeRBACRepo) GetEmployeeRoles() ([]rbac.EmployeeRoleRow, error) {
	return f.employeeRoles, nil
}

func (f *fakeRBACRepo) GetRolePermissions() ([]rbac.RolePermissionRow, error) {
	return f.rolePerms, nil
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRBACRepo{
		employeeRoles: []rbac.EmployeeRoleRow{
			{EmployeeID: "emp-1", RoleName: "ADMIN"},
			{EmployeeID: "emp-2", RoleName: "USER"},
		},
		rolePerms: []rbac.RolePermissionRow{
			{RoleName: "ADMIN", Resource: "salary", Action: "read"},
			{RoleName: "ADMIN", Resource: "salary", Action: "update"},
			{RoleName: "USER", Resource: "employee", Action: "read"},
		},
	}
	svc := rbac.NewService(repo, newTestEnforcer(t))

	t.Run("admin can update salary", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-1", Resource: "salary", Action: "update",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("user cannot read salary", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-2", Resource: "salary", Action: "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown employee denied", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-9", Resource: "salary", Action: "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
