package infra

import (
	_ "embed"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

// NewEnforcer builds an enforcer from the compiled-in RBAC model, so the
// binary carries its own access rules. Policies are loaded from the
// database afterwards.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
