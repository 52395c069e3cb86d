package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// ReviewServiceImpl implements domain.ReviewService. Approval and rejection
// are terminal: a reviewed application never returns to pending.
type ReviewServiceImpl struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

// NewReviewService creates a new doctor review service
func NewReviewService(userRepo domain.UserRepository, log *logrus.Logger) domain.ReviewService {
	return &ReviewServiceImpl{userRepo: userRepo, log: log}
}

// Approve implements domain.ReviewService: the pending doctor becomes a full
// doctor with an active account.
func (s *ReviewServiceImpl) Approve(ctx context.Context, doctorID uint) (*domain.User, error) {
	user, err := s.pendingDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	user.Role = domain.RoleDoctor
	user.Status = domain.StatusActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to approve doctor: %w", err)
	}

	s.log.WithFields(logrus.Fields{"doctor_id": user.ID, "action": "approve"}).Info("doctor application reviewed")
	return user, nil
}

// Reject implements domain.ReviewService: the role stays as applied, the
// account is set inactive.
func (s *ReviewServiceImpl) Reject(ctx context.Context, doctorID uint) (*domain.User, error) {
	user, err := s.pendingDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	user.Status = domain.StatusInactive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to reject doctor: %w", err)
	}

	s.log.WithFields(logrus.Fields{"doctor_id": user.ID, "action": "reject"}).Info("doctor application reviewed")
	return user, nil
}

func (s *ReviewServiceImpl) pendingDoctor(ctx context.Context, doctorID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if !user.IsDoctorFamily() {
		return nil, domain.ErrUserNotFound
	}

	if user.ClaimStatus() != domain.ClaimStatusPending {
		return nil, domain.ErrAlreadyReviewed
	}

	return user, nil
}
