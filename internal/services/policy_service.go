package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/RPleshkov/SessionVault/domain"
)

// The real enforcer already satisfies the narrow interface the service needs.
var _ domain.CasbinEnforcer = (*casbin.Enforcer)(nil)

// PolicyServiceImpl implements domain.PolicyService on a Casbin enforcer
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService. Adding a rule that already
// exists fails with ErrPolicyExists; successful additions are persisted.
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	added, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	if !added {
		return domain.ErrPolicyExists
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService. Removing an absent rule
// fails with ErrPolicyNotFound; successful removals are persisted.
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	removed, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	if !removed {
		return domain.ErrPolicyNotFound
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// ListPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) ListPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}
