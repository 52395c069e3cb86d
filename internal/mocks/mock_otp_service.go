package mocks

import (
	"context"
	"time"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc func(ctx context.Context, phone, purpose string) (*domain.OTPCode, error)
	CheckFunc func(ctx context.Context, phone, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{
		IssueFunc: func(ctx context.Context, phone, purpose string) (*domain.OTPCode, error) {
			return &domain.OTPCode{
				ID:        1,
				Phone:     phone,
				Code:      "123456",
				Purpose:   purpose,
				ExpiresAt: time.Now().Add(10 * time.Minute),
			}, nil
		},
		CheckFunc: func(ctx context.Context, phone, code string) error {
			return nil
		},
	}
}

func (m *MockOTPService) Issue(ctx context.Context, phone, purpose string) (*domain.OTPCode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phone, purpose)
	}
	return nil, nil
}

func (m *MockOTPService) Check(ctx context.Context, phone, code string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, phone, code)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
