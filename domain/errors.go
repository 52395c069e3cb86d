package domain

import "errors"

// Credential errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoPassword         = errors.New("no password set for this account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Doctor approval errors, the NotApproved sub-reasons
var (
	ErrDoctorPending  = errors.New("doctor application pending approval")
	ErrDoctorRejected = errors.New("doctor application rejected")
)

// OTP errors
var (
	ErrOTPInvalidOrExpired = errors.New("invalid or expired otp code")
	ErrOTPMaxAttempts      = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit      = errors.New("otp resend limit exceeded")
	ErrOTPDeliveryFailed   = errors.New("failed to send verification code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrAlreadyReviewed = errors.New("doctor application already reviewed")
	ErrPolicyExists    = errors.New("policy already exists")
	ErrPolicyNotFound  = errors.New("policy not found")
)
