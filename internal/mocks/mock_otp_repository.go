package mocks

import (
	"context"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc            func(ctx context.Context, code *domain.OTPCode) error
	SupersedeActiveFunc   func(ctx context.Context, phone string) error
	FindActiveFunc        func(ctx context.Context, phone, code string) (*domain.OTPCode, error)
	IncrementAttemptsFunc func(ctx context.Context, phone string) error
	MarkVerifiedFunc      func(ctx context.Context, id uint) error
	TransactionFunc       func(ctx context.Context, fn func(domain.OTPRepository) error) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create stores a new ledger entry
func (m *MockOTPRepository) Create(ctx context.Context, code *domain.OTPCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

// SupersedeActive marks all unverified records for the phone as verified
func (m *MockOTPRepository) SupersedeActive(ctx context.Context, phone string) error {
	if m.SupersedeActiveFunc != nil {
		return m.SupersedeActiveFunc(ctx, phone)
	}
	return nil
}

// FindActive finds the unverified, unexpired record matching phone+code
func (m *MockOTPRepository) FindActive(ctx context.Context, phone, code string) (*domain.OTPCode, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

// IncrementAttempts bumps the per-phone attempt counter
func (m *MockOTPRepository) IncrementAttempts(ctx context.Context, phone string) error {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, phone)
	}
	return nil
}

// MarkVerified marks a record as verified
func (m *MockOTPRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

// Transaction runs fn; by default against the mock itself
func (m *MockOTPRepository) Transaction(ctx context.Context, fn func(domain.OTPRepository) error) error {
	if m.TransactionFunc != nil {
		return m.TransactionFunc(ctx, fn)
	}
	return fn(m)
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
