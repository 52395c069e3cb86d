package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService on top of the ledger
// repository. Codes live as database records; Redis only backs the resend
// throttle.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
	log             *logrus.Logger
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new ledger-backed OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig, log *logrus.Logger) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
		log:             log,
	}
}

// Issue implements domain.OTPService. Superseding prior unverified codes and
// inserting the new record run inside one transaction so two valid codes
// never coexist for a phone. When SMS delivery fails the fresh record is
// marked verified again, which keeps a caller from verifying against a code
// the user never received.
func (s *OTPServiceImpl) Issue(ctx context.Context, phone, purpose string) (*domain.OTPCode, error) {
	resendKey := fmt.Sprintf("otp:res:%s", phone)

	if s.redisClient != nil {
		ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
		if err == nil && ttl > 0 {
			return nil, domain.ErrOTPResendLimit
		}
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &domain.OTPCode{
		Phone:     phone,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}

	err = s.otpRepo.Transaction(ctx, func(r domain.OTPRepository) error {
		if err := r.SupersedeActive(ctx, phone); err != nil {
			return fmt.Errorf("failed to supersede prior codes: %w", err)
		}
		return r.Create(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store OTP record: %w", err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
			s.log.WithError(err).Warn("otp resend throttle not set")
		}
	}

	message := fmt.Sprintf("Your Niramaya Pravasi verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// Invalidate the record so nobody can verify a code that was never
		// delivered, and report a generic send failure upward.
		if mvErr := s.otpRepo.MarkVerified(ctx, record.ID); mvErr != nil {
			s.log.WithError(mvErr).WithField("phone", phone).Error("failed to roll back undelivered otp")
		}
		if s.redisClient != nil {
			s.redisClient.Del(ctx, resendKey)
		}
		s.log.WithError(err).WithField("phone", phone).Error("otp delivery failed")
		return nil, domain.ErrOTPDeliveryFailed
	}

	return record, nil
}

// Check implements domain.OTPService. The whole sequence runs inside a
// transaction so two concurrent wrong guesses cannot both pass the attempt
// limit before either increment commits. The transaction callback returns an
// error only on storage failures; a failed check is carried in outcome so the
// attempt increment still commits.
func (s *OTPServiceImpl) Check(ctx context.Context, phone, code string) error {
	var outcome error
	err := s.otpRepo.Transaction(ctx, func(r domain.OTPRepository) error {
		record, err := r.FindActive(ctx, phone, code)
		if err != nil {
			if err != domain.ErrOTPInvalidOrExpired {
				return err
			}
			// Attempt counting is per phone: a wrong guess charges
			// whatever unverified record exists, not the guessed code.
			if incErr := r.IncrementAttempts(ctx, phone); incErr != nil {
				return fmt.Errorf("failed to increment attempts: %w", incErr)
			}
			outcome = err
			return nil
		}

		if record.Attempts >= s.config.MaxAttempts {
			outcome = domain.ErrOTPMaxAttempts
			return nil
		}

		// Single-use: consuming the code marks it verified.
		return r.MarkVerified(ctx, record.ID)
	})
	if err != nil {
		return err
	}
	return outcome
}

// generateSecureCode generates a cryptographically secure OTP code with
// leading zeros allowed
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
