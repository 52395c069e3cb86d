package mocks

import (
	"context"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc               func(ctx context.Context, user *domain.User) error
	FindByEmailFunc          func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc          func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc             func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc               func(ctx context.Context, user *domain.User) error
	UpsertPatientByPhoneFunc func(ctx context.Context, phone string) (*domain.User, error)
	ListDoctorsByStatusFunc  func(ctx context.Context, status string) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// UpsertPatientByPhone returns or creates a patient account for the phone
func (m *MockUserRepository) UpsertPatientByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.UpsertPatientByPhoneFunc != nil {
		return m.UpsertPatientByPhoneFunc(ctx, phone)
	}
	return &domain.User{ID: 1, Phone: phone, Role: domain.RolePatient, Status: domain.StatusActive}, nil
}

// ListDoctorsByStatus lists doctor accounts by status
func (m *MockUserRepository) ListDoctorsByStatus(ctx context.Context, status string) ([]*domain.User, error) {
	if m.ListDoctorsByStatusFunc != nil {
		return m.ListDoctorsByStatusFunc(ctx, status)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
