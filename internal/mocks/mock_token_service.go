package mocks

import (
	"time"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAuthTokenFunc func(user *domain.User) (string, error)
	ValidateTokenFunc     func(token string) (*domain.Claims, error)
	PeekClaimsFunc        func(token string) *domain.Claims
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAuthToken produces a token for the user
func (m *MockTokenService) GenerateAuthToken(user *domain.User) (string, error) {
	if m.GenerateAuthTokenFunc != nil {
		return m.GenerateAuthTokenFunc(user)
	}
	return "mock_token", nil
}

// ValidateToken performs the authoritative token check
func (m *MockTokenService) ValidateToken(token string) (*domain.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(token)
	}
	return &domain.Claims{
		SubjectID: 1,
		Role:      domain.ClaimRolePatient,
		Status:    "active",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

// PeekClaims decodes without verification
func (m *MockTokenService) PeekClaims(token string) *domain.Claims {
	if m.PeekClaimsFunc != nil {
		return m.PeekClaimsFunc(token)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
