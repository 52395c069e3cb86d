package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/mocks"
)

func pendingDoctorRepo(t *testing.T) (*mocks.MockUserRepository, **domain.User) {
	t.Helper()
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{
			ID:     id,
			Phone:  "+919876543210",
			Role:   domain.RolePendingDoctor,
			Status: domain.StatusPending,
		}, nil
	}
	var updated *domain.User
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updated = user
		return nil
	}
	return userRepo, &updated
}

func TestReviewApprove(t *testing.T) {
	userRepo, updated := pendingDoctorRepo(t)
	svc := NewReviewService(userRepo, testLogger())

	user, err := svc.Approve(context.Background(), 5)

	require.NoError(t, err)
	require.NotNil(t, *updated)
	assert.Equal(t, domain.RoleDoctor, user.Role)
	assert.Equal(t, domain.StatusActive, user.Status)
	assert.Equal(t, "approved", user.ClaimStatus())
}

func TestReviewReject(t *testing.T) {
	userRepo, updated := pendingDoctorRepo(t)
	svc := NewReviewService(userRepo, testLogger())

	user, err := svc.Reject(context.Background(), 5)

	require.NoError(t, err)
	require.NotNil(t, *updated)
	assert.Equal(t, domain.RolePendingDoctor, user.Role)
	assert.Equal(t, domain.StatusInactive, user.Status)
	assert.Equal(t, "rejected", user.ClaimStatus())
}

func TestReview_AlreadyReviewed(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status string
	}{
		{"already approved", domain.RoleDoctor, domain.StatusActive},
		{"already rejected", domain.RolePendingDoctor, domain.StatusInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				return &domain.User{ID: id, Role: tt.role, Status: tt.status}, nil
			}
			svc := NewReviewService(userRepo, testLogger())

			_, err := svc.Approve(context.Background(), 5)
			assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

			_, err = svc.Reject(context.Background(), 5)
			assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		})
	}
}

func TestReview_NonDoctorHiddenAsNotFound(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RolePatient, Status: domain.StatusActive}, nil
	}
	svc := NewReviewService(userRepo, testLogger())

	_, err := svc.Approve(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
