package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// Roles allowed to sign in with email+password. The gate is enforced before
// any hash is looked at, so a stray password hash on a patient record never
// opens the email path.
var emailLoginRoles = map[string]bool{
	domain.RoleSuperAdmin: true,
	domain.RoleAdmin:      true,
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	sessionTTL  time.Duration
	log         *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	sessionTTL time.Duration,
	log *logrus.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		sessionTTL:  sessionTTL,
		log:         log,
	}
}

// RegisterDoctor implements domain.AuthService. A new doctor starts in the
// pending state and is routed to the status page until an admin reviews the
// application.
func (s *AuthServiceImpl) RegisterDoctor(ctx context.Context, reg *domain.DoctorRegistration) (*domain.User, error) {
	if existing, err := s.userRepo.FindByPhone(ctx, reg.Phone); err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:         reg.Email,
		Phone:         reg.Phone,
		PasswordHash:  hashedPassword,
		Role:          domain.RolePendingDoctor,
		Status:        domain.StatusPending,
		FullName:      reg.FullName,
		LicenseNumber: reg.LicenseNumber,
		Specialty:     reg.Specialty,
		Experience:    reg.Experience,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.otpSvc.Issue(ctx, reg.Phone, domain.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "phone": user.Phone}).Info("doctor registered")
	return user, nil
}

// RegisterPatient implements domain.AuthService. Patients have no standing
// record until their first successful OTP login; registration only sends the
// code.
func (s *AuthServiceImpl) RegisterPatient(ctx context.Context, phone string) error {
	_, err := s.otpSvc.Issue(ctx, phone, domain.OTPPurposeRegistration)
	return err
}

// LoginWithEmail implements domain.AuthService. Only superadmin and admin
// accounts may use the email+password path.
func (s *AuthServiceImpl) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if !emailLoginRoles[user.Role] {
		return nil, domain.ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		return nil, domain.ErrNoPassword
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.StatusActive {
		return nil, domain.ErrUserInactive
	}

	return s.establishSession(ctx, user)
}

// LoginDoctor implements domain.AuthService. The approval gate runs after
// the password check so a bad password never learns the approval state, and
// an unapproved doctor with the right password is told pending vs rejected
// for status-page routing.
func (s *AuthServiceImpl) LoginDoctor(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if !user.IsDoctorFamily() {
		return nil, domain.ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		return nil, domain.ErrNoPassword
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role != domain.RoleDoctor || user.Status != domain.StatusActive {
		if user.ClaimStatus() == domain.ClaimStatusRejected {
			return nil, domain.ErrDoctorRejected
		}
		return nil, domain.ErrDoctorPending
	}

	return s.establishSession(ctx, user)
}

// LoginWithOTP implements domain.AuthService. A first successful OTP login
// for an unknown phone provisions an active patient account; the uniqueness
// constraint on phone keeps retries and races down to a single record.
func (s *AuthServiceImpl) LoginWithOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if err := s.otpSvc.Check(ctx, phone, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpsertPatientByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to provision patient: %w", err)
	}

	return s.establishSession(ctx, user)
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// establishSession mints both claim carriers for a verified identity: the
// server-side session record and the signed authToken cookie value.
func (s *AuthServiceImpl) establishSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.ClaimRole(),
		Status:    user.ClaimStatus(),
		Phone:     user.Phone,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	authToken, err := s.tokenSvc.GenerateAuthToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		AuthToken: authToken,
		SessionID: session.ID,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}
