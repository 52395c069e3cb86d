package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	otpSvc       domain.OTPService
	authTokenTTL time.Duration
	sessionTTL   time.Duration
	log          *logrus.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, authTokenTTL, sessionTTL time.Duration, log *logrus.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		otpSvc:       otpSvc,
		authTokenTTL: authTokenTTL,
		sessionTTL:   sessionTTL,
		log:          log,
	}
}

// LoginRequest represents the email+password login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DoctorLoginRequest represents the doctor phone+password login request
type DoctorLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DoctorRegisterRequest represents a doctor application
type DoctorRegisterRequest struct {
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Password      string `json:"password" binding:"required,min=6"`
	FullName      string `json:"full_name" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	Specialty     string `json:"specialty" binding:"required"`
	Experience    int    `json:"experience" binding:"min=0"`
}

// PatientRegisterRequest represents a patient signup request
type PatientRegisterRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPSendRequest represents an OTP issue request
type OTPSendRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Purpose string `json:"purpose" binding:"required,oneof=LOGIN REGISTRATION"`
}

// OTPVerifyRequest represents a standalone OTP verification request
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// Login handles email+password login for superadmin and admin accounts
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoPassword), errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	h.setAuthCookies(c, result)
	c.JSON(http.StatusOK, loginResponse(result))
}

// DoctorLogin handles phone+password login for doctors. Pending and rejected
// applications are reported distinctly so the client can route to the right
// status page.
func (h *AuthHandlers) DoctorLogin(c *gin.Context) {
	var req DoctorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginDoctor(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDoctorPending):
			c.JSON(http.StatusForbidden, gin.H{"error": "Application pending approval", "status": domain.ClaimStatusPending})
		case errors.Is(err, domain.ErrDoctorRejected):
			c.JSON(http.StatusForbidden, gin.H{"error": "Application rejected", "status": domain.ClaimStatusRejected})
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoPassword), errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	h.setAuthCookies(c, result)
	c.JSON(http.StatusOK, loginResponse(result))
}

// RegisterDoctor handles doctor applications
func (h *AuthHandlers) RegisterDoctor(c *gin.Context) {
	var req DoctorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.RegisterDoctor(c.Request.Context(), &domain.DoctorRegistration{
		Phone:         req.Phone,
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Specialty:     req.Specialty,
		Experience:    req.Experience,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case errors.Is(err, domain.ErrOTPDeliveryFailed), errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "Application submitted. Please verify your phone number.",
			"user_id": user.ID,
			"status":  user.ClaimStatus(),
		},
	})
}

// RegisterPatient handles patient signup. No record is created yet: the
// account appears on the first successful OTP login.
func (h *AuthHandlers) RegisterPatient(c *gin.Context) {
	var req PatientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.RegisterPatient(c.Request.Context(), req.Phone); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Verification code sent"},
	})
}

// SendOTP handles OTP issuance for login and registration
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.otpSvc.Issue(c.Request.Context(), req.Phone, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		default:
			// Delivery details stay server-side; the caller only learns the
			// send failed.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Verification code sent"},
	})
}

// VerifyOTP handles standalone OTP verification. It consumes the code but
// does not establish a session.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpSvc.Check(c.Request.Context(), req.Phone, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded", "verified": false})
		case errors.Is(err, domain.ErrOTPInvalidOrExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code", "verified": false})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed", "verified": false})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// OTPLogin handles phone+OTP login for patients. An unknown phone is
// provisioned as a patient account on first success.
func (h *AuthHandlers) OTPLogin(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded"})
		case errors.Is(err, domain.ErrOTPInvalidOrExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	h.setAuthCookies(c, result)
	c.JSON(http.StatusOK, loginResponse(result))
}

// Me handles getting user profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"phone":      user.Phone,
			"full_name":  user.FullName,
			"role":       user.ClaimRole(),
			"status":     user.ClaimStatus(),
			"specialty":  user.Specialty,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		},
	})
}

// Logout handles user logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	if sessionID, exists := c.Get("session_id"); exists {
		if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully"},
	})
}

// setAuthCookies writes both claim carriers: the 7-day signed authToken and
// the 24-hour opaque session cookie.
func (h *AuthHandlers) setAuthCookies(c *gin.Context, result *domain.AuthResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthTokenCookie, result.AuthToken, int(h.authTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie(middleware.SessionCookie, result.SessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)
}

func (h *AuthHandlers) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

func loginResponse(result *domain.AuthResult) gin.H {
	return gin.H{
		"data": gin.H{
			"auth_token": result.AuthToken,
			"token_type": "Bearer",
			"expires_in": result.ExpiresIn,
			"user": gin.H{
				"id":     result.User.ID,
				"email":  result.User.Email,
				"phone":  result.User.Phone,
				"role":   result.User.ClaimRole(),
				"status": result.User.ClaimStatus(),
			},
		},
	}
}
