package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM.
// Ledger records are never hard-deleted: superseding, consuming and
// delivery-failure rollback all happen by flipping the verified flag.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOTPCode represents the database model for one ledger entry
type DBOTPCode struct {
	ID        uint      `gorm:"primaryKey"`
	Phone     string    `gorm:"index;size:32"`
	Code      string    `gorm:"size:8"`
	Purpose   string    `gorm:"size:32"`
	ExpiresAt time.Time `gorm:"index"`
	Verified  bool      `gorm:"index"`
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOTPCode) TableName() string {
	return "otp_codes"
}

// NewOTPRepository creates a new OTP ledger repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, code *domain.OTPCode) error {
	dbCode := r.domainToDB(code)
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	return nil
}

// SupersedeActive implements domain.OTPRepository
func (r *OTPRepositoryImpl) SupersedeActive(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Model(&DBOTPCode{}).
		Where("phone = ? AND verified = ?", phone, false).
		Update("verified", true).Error
}

// FindActive implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindActive(ctx context.Context, phone, code string) (*domain.OTPCode, error) {
	var dbCode DBOTPCode
	err := r.db.WithContext(ctx).
		Where("phone = ? AND code = ? AND verified = ? AND expires_at > ?", phone, code, false, time.Now()).
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// IncrementAttempts implements domain.OTPRepository. The single UPDATE with
// an arithmetic expression keeps concurrent wrong guesses from losing
// increments.
func (r *OTPRepositoryImpl) IncrementAttempts(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Model(&DBOTPCode{}).
		Where("phone = ? AND verified = ?", phone, false).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// MarkVerified implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&DBOTPCode{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

// Transaction implements domain.OTPRepository
func (r *OTPRepositoryImpl) Transaction(ctx context.Context, fn func(domain.OTPRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OTPRepositoryImpl{db: tx})
	})
}

func (r *OTPRepositoryImpl) domainToDB(code *domain.OTPCode) *DBOTPCode {
	return &DBOTPCode{
		ID:        code.ID,
		Phone:     code.Phone,
		Code:      code.Code,
		Purpose:   code.Purpose,
		ExpiresAt: code.ExpiresAt,
		Verified:  code.Verified,
		Attempts:  code.Attempts,
	}
}

func (r *OTPRepositoryImpl) dbToDomain(dbCode *DBOTPCode) *domain.OTPCode {
	return &domain.OTPCode{
		ID:        dbCode.ID,
		Phone:     dbCode.Phone,
		Code:      dbCode.Code,
		Purpose:   dbCode.Purpose,
		ExpiresAt: dbCode.ExpiresAt,
		Verified:  dbCode.Verified,
		Attempts:  dbCode.Attempts,
		CreatedAt: dbCode.CreatedAt,
		UpdatedAt: dbCode.UpdatedAt,
	}
}
