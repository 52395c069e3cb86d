package mocks

import (
	"context"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterDoctorFunc  func(ctx context.Context, reg *domain.DoctorRegistration) (*domain.User, error)
	RegisterPatientFunc func(ctx context.Context, phone string) error
	LoginWithEmailFunc  func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginDoctorFunc     func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
	LoginWithOTPFunc    func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sessionID string) error
	GetUserProfileFunc  func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RegisterDoctor(ctx context.Context, reg *domain.DoctorRegistration) (*domain.User, error) {
	if m.RegisterDoctorFunc != nil {
		return m.RegisterDoctorFunc(ctx, reg)
	}
	return nil, nil
}

func (m *MockAuthService) RegisterPatient(ctx context.Context, phone string) error {
	if m.RegisterPatientFunc != nil {
		return m.RegisterPatientFunc(ctx, phone)
	}
	return nil
}

func (m *MockAuthService) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginWithEmailFunc != nil {
		return m.LoginWithEmailFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockAuthService) LoginDoctor(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.LoginDoctorFunc != nil {
		return m.LoginDoctorFunc(ctx, phone, password)
	}
	return nil, nil
}

func (m *MockAuthService) LoginWithOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.LoginWithOTPFunc != nil {
		return m.LoginWithOTPFunc(ctx, phone, code)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
