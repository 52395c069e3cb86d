package domain

import "context"

// UserRepository defines identity record data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	// UpsertPatientByPhone returns the existing record for the phone or
	// creates an ACTIVE patient for it. Safe under concurrent first logins:
	// the phone uniqueness constraint guarantees exactly one record wins and
	// the loser re-reads it.
	UpsertPatientByPhone(ctx context.Context, phone string) (*User, error)
	ListDoctorsByStatus(ctx context.Context, status string) ([]*User, error)
}

// OTPRepository defines data access for the one-time-code ledger.
// Implementations must make Transaction serialize supersede-then-insert and
// find-then-increment sequences for a phone.
type OTPRepository interface {
	Create(ctx context.Context, code *OTPCode) error
	// SupersedeActive marks every unverified record for the phone as verified
	// so no stale code stays acceptable once a new one is issued.
	SupersedeActive(ctx context.Context, phone string) error
	// FindActive returns the unverified, unexpired record matching phone+code.
	FindActive(ctx context.Context, phone, code string) (*OTPCode, error)
	// IncrementAttempts bumps the attempt counter on any unverified record
	// for the phone, regardless of which code was guessed.
	IncrementAttempts(ctx context.Context, phone string) error
	MarkVerified(ctx context.Context, id uint) error
	Transaction(ctx context.Context, fn func(OTPRepository) error) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService defines the credential verification and login business logic
type AuthService interface {
	RegisterDoctor(ctx context.Context, reg *DoctorRegistration) (*User, error)
	RegisterPatient(ctx context.Context, phone string) error
	LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error)
	LoginDoctor(ctx context.Context, phone, password string) (*AuthResult, error)
	LoginWithOTP(ctx context.Context, phone, code string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines the one-time-code ledger operations
type OTPService interface {
	// Issue generates a 6-digit code for the phone, supersedes all prior
	// unverified codes, stores the new record and sends it out. The returned
	// record is unusable if delivery fails.
	Issue(ctx context.Context, phone, purpose string) (*OTPCode, error)
	// Check consumes the code: single-use, per-phone attempt limited.
	Check(ctx context.Context, phone, code string) error
}

// ReviewService mutates doctor approval state
type ReviewService interface {
	Approve(ctx context.Context, doctorID uint) (*User, error)
	Reject(ctx context.Context, doctorID uint) (*User, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and checks the custom signed cookie token.
//
// PeekClaims and ValidateToken model two trust tiers deliberately: Peek only
// decodes the payload segment and is used for routing redirects, Validate
// performs the full signature and expiry check and guards anything that
// mutates state.
type TokenService interface {
	GenerateAuthToken(user *User) (string, error)
	ValidateToken(token string) (*Claims, error)
	PeekClaims(token string) *Claims
}

// NotificationService defines outbound message delivery
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService defines API authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the Casbin enforcer the service layer uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
