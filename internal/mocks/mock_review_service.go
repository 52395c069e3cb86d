package mocks

import (
	"context"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// MockReviewService implements domain.ReviewService interface for testing
type MockReviewService struct {
	ApproveFunc func(ctx context.Context, doctorID uint) (*domain.User, error)
	RejectFunc  func(ctx context.Context, doctorID uint) (*domain.User, error)
}

func NewMockReviewService() *MockReviewService {
	return &MockReviewService{}
}

func (m *MockReviewService) Approve(ctx context.Context, doctorID uint) (*domain.User, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockReviewService) Reject(ctx context.Context, doctorID uint) (*domain.User, error) {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, doctorID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.ReviewService = (*MockReviewService)(nil)
