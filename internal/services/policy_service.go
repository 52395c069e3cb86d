package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService for the API-side
// authorization rules
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService
func (s *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	added, err := s.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	if !added {
		return domain.ErrPolicyExists
	}
	return s.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (s *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	removed, err := s.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	if !removed {
		return domain.ErrPolicyNotFound
	}
	return s.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (s *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (s *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := s.enforcer.GetPolicy()
	if err != nil {
		return [][]string{}
	}
	return policies
}
