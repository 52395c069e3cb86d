package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"index;size:255"`
	// Nullable so password-only accounts without a phone don't collide
	// on the unique index.
	Phone         *string `gorm:"uniqueIndex;size:32"`
	PasswordHash  string `gorm:"column:password"`
	Role          string `gorm:"index;size:64"`
	Status        string `gorm:"index;size:32"`
	FullName      string `gorm:"size:255"`
	LicenseNumber string `gorm:"size:64"`
	Specialty     string `gorm:"size:128"`
	Experience    int
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time      `gorm:"index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// UpsertPatientByPhone implements domain.UserRepository. The phone column
// carries a uniqueness constraint, so when two first-time logins race, one
// insert wins and the other conflicts into a no-op; both then read the same
// row back.
func (r *UserRepositoryImpl) UpsertPatientByPhone(ctx context.Context, phone string) (*domain.User, error) {
	dbUser := DBUser{
		Phone:  &phone,
		Role:   domain.RolePatient,
		Status: domain.StatusActive,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(&dbUser).Error
	if err != nil {
		return nil, err
	}

	// On conflict the insert assigns no ID; read the winning row either way.
	return r.FindByPhone(ctx, phone)
}

// ListDoctorsByStatus implements domain.UserRepository
func (r *UserRepositoryImpl) ListDoctorsByStatus(ctx context.Context, status string) ([]*domain.User, error) {
	var dbUsers []DBUser
	q := r.db.WithContext(ctx).Where("role IN ?", []string{domain.RoleDoctor, domain.RolePendingDoctor})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at").Find(&dbUsers).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	var phone *string
	if user.Phone != "" {
		phone = &user.Phone
	}
	return &DBUser{
		ID:            user.ID,
		Email:         user.Email,
		Phone:         phone,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role,
		Status:        user.Status,
		FullName:      user.FullName,
		LicenseNumber: user.LicenseNumber,
		Specialty:     user.Specialty,
		Experience:    user.Experience,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	var phone string
	if dbUser.Phone != nil {
		phone = *dbUser.Phone
	}
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		Phone:         phone,
		PasswordHash:  dbUser.PasswordHash,
		Role:          dbUser.Role,
		Status:        dbUser.Status,
		FullName:      dbUser.FullName,
		LicenseNumber: dbUser.LicenseNumber,
		Specialty:     dbUser.Specialty,
		Experience:    dbUser.Experience,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
