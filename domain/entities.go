package domain

import (
	"strings"
	"time"
)

// Roles stored on identity records. PENDING_DOCTOR is a doctor whose
// application has not been reviewed yet; approval flips the role to DOCTOR.
const (
	RoleSuperAdmin    = "SUPERADMIN"
	RoleAdmin         = "ADMIN"
	RoleDoctor        = "DOCTOR"
	RolePendingDoctor = "PENDING_DOCTOR"
	RolePatient       = "PATIENT"
)

// Account statuses. A rejected doctor keeps its role and is set INACTIVE.
const (
	StatusActive   = "ACTIVE"
	StatusPending  = "PENDING"
	StatusInactive = "INACTIVE"
)

// Claim-level role and status strings as they appear inside tokens.
const (
	ClaimRoleSuperAdmin = "superadmin"
	ClaimRoleAdmin      = "admin"
	ClaimRoleDoctor     = "doctor"
	ClaimRolePatient    = "patient"

	ClaimStatusApproved = "approved"
	ClaimStatusPending  = "pending"
	ClaimStatusRejected = "rejected"
)

// OTP purposes.
const (
	OTPPurposeLogin        = "LOGIN"
	OTPPurposeRegistration = "REGISTRATION"
)

// User represents an identity record. Email and phone are both usable as
// login handles; at least one of them is set. Email-login roles (superadmin,
// admin) always carry a password hash, OTP-only patients carry none.
type User struct {
	ID            uint
	Email         string
	Phone         string
	PasswordHash  string `gorm:"column:password"`
	Role          string
	Status        string
	FullName      string
	LicenseNumber string
	Specialty     string
	Experience    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClaimRole returns the lower-cased role string embedded in tokens.
// A pending doctor is still presented as "doctor"; the status claim carries
// the approval sub-state.
func (u *User) ClaimRole() string {
	switch u.Role {
	case RoleSuperAdmin:
		return ClaimRoleSuperAdmin
	case RoleAdmin:
		return ClaimRoleAdmin
	case RoleDoctor, RolePendingDoctor:
		return ClaimRoleDoctor
	case RolePatient:
		return ClaimRolePatient
	default:
		return strings.ToLower(u.Role)
	}
}

// ClaimStatus returns the status string embedded in tokens. For the doctor
// family the approval sub-state is derived from role+status; other roles get
// the plain lower-cased status.
func (u *User) ClaimStatus() string {
	if u.IsDoctorFamily() {
		switch {
		case u.Role == RoleDoctor && u.Status == StatusActive:
			return ClaimStatusApproved
		case u.Status == StatusInactive:
			return ClaimStatusRejected
		default:
			return ClaimStatusPending
		}
	}
	return strings.ToLower(u.Status)
}

// IsDoctorFamily reports whether the record belongs to the doctor role group.
func (u *User) IsDoctorFamily() bool {
	return u.Role == RoleDoctor || u.Role == RolePendingDoctor
}

// Claims is the single claim shape every token carrier collapses to.
// Role and Status hold the lower-cased claim forms.
type Claims struct {
	SubjectID uint   `json:"sub"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Phone     string `json:"phone,omitempty"`
	ExpiresAt int64  `json:"exp"`
}

// OTPCode represents one ledger entry for a one-time code. Records are never
// hard-deleted; superseding or consuming a code sets Verified. Attempts is a
// per-phone counter: wrong guesses increment whatever unverified record
// exists for the phone.
type OTPCode struct {
	ID        uint
	Phone     string
	Code      string
	Purpose   string
	ExpiresAt time.Time
	Verified  bool
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session represents a server-side session, the "library-managed" claim
// carrier. The browser holds only the opaque session ID.
type Session struct {
	ID        string
	UserID    uint
	Role      string
	Status    string
	Phone     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Claims maps the session record onto the shared claim shape.
func (s *Session) Claims() *Claims {
	return &Claims{
		SubjectID: s.UserID,
		Role:      s.Role,
		Status:    s.Status,
		Phone:     s.Phone,
		ExpiresAt: s.ExpiresAt.Unix(),
	}
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User      *User
	AuthToken string
	SessionID string
	ExpiresIn int64
}

// DoctorRegistration carries the fields a doctor submits when applying.
type DoctorRegistration struct {
	Phone         string
	Email         string
	Password      string
	FullName      string
	LicenseNumber string
	Specialty     string
	Experience    int
}
