package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/middleware"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/mocks"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAuthHandlersForTest(authSvc domain.AuthService, otpSvc domain.OTPService) *AuthHandlers {
	return NewAuthHandlers(authSvc, otpSvc, 168*time.Hour, 24*time.Hour, testLogger())
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST(path, handler)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func cookieValue(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func activeAdminResult() *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:     7,
			Email:  "admin@example.com",
			Role:   domain.RoleAdmin,
			Status: domain.StatusActive,
		},
		AuthToken: "signed.jwt.token",
		SessionID: "sess-7",
		ExpiresIn: 86400,
	}
}

func TestLoginHandler_Success(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		assert.Equal(t, "admin@example.com", email)
		return activeAdminResult(), nil
	}
	h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

	w := postJSON(t, h.Login, "/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed.jwt.token", cookieValue(t, w, middleware.AuthTokenCookie))
	assert.Equal(t, "sess-7", cookieValue(t, w, middleware.SessionCookie))

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body["data"]["auth_token"])
}

func TestLoginHandler_InvalidCredentialsIndistinct(t *testing.T) {
	// Unknown user, missing password and wrong password all collapse to the
	// same response.
	for _, svcErr := range []error{domain.ErrUserNotFound, domain.ErrNoPassword, domain.ErrInvalidCredentials} {
		authSvc := mocks.NewMockAuthService()
		authSvc.LoginWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
			return nil, svcErr
		}
		h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

		w := postJSON(t, h.Login, "/api/auth/login", gin.H{
			"email":    "admin@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code, svcErr)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestLoginHandler_BadPayload(t *testing.T) {
	h := newAuthHandlersForTest(mocks.NewMockAuthService(), mocks.NewMockOTPService())

	w := postJSON(t, h.Login, "/api/auth/login", gin.H{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorLoginHandler_StatusBranches(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantCode   int
		wantStatus string
	}{
		{"pending application", domain.ErrDoctorPending, http.StatusForbidden, domain.ClaimStatusPending},
		{"rejected application", domain.ErrDoctorRejected, http.StatusForbidden, domain.ClaimStatusRejected},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginDoctorFunc = func(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
				return nil, tt.svcErr
			}
			h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

			w := postJSON(t, h.DoctorLogin, "/api/auth/doctor/login", gin.H{
				"phone":    "+919876543210",
				"password": "secret123",
			})

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantStatus != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantStatus, body["status"])
			}
		})
	}
}

func TestRegisterDoctorHandler(t *testing.T) {
	payload := gin.H{
		"phone":          "+919876543210",
		"password":       "secret123",
		"full_name":      "Dr. Asha Rao",
		"license_number": "MH-12345",
		"specialty":      "Cardiology",
		"experience":     8,
	}

	t.Run("created", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.RegisterDoctorFunc = func(ctx context.Context, reg *domain.DoctorRegistration) (*domain.User, error) {
			return &domain.User{ID: 21, Role: domain.RolePendingDoctor, Status: domain.StatusPending}, nil
		}
		h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

		w := postJSON(t, h.RegisterDoctor, "/api/auth/register", payload)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "pending")
	})

	t.Run("duplicate", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.RegisterDoctorFunc = func(ctx context.Context, reg *domain.DoctorRegistration) (*domain.User, error) {
			return nil, domain.ErrUserAlreadyExists
		}
		h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

		w := postJSON(t, h.RegisterDoctor, "/api/auth/register", payload)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegisterPatientHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	sentTo := ""
	authSvc.RegisterPatientFunc = func(ctx context.Context, phone string) error {
		sentTo = phone
		return nil
	}
	h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

	w := postJSON(t, h.RegisterPatient, "/api/auth/patient/register", gin.H{
		"phone": "+919876543210",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+919876543210", sentTo)
}

func TestSendOTPHandler(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		h := newAuthHandlersForTest(mocks.NewMockAuthService(), mocks.NewMockOTPService())

		w := postJSON(t, h.SendOTP, "/api/auth/otp/send", gin.H{
			"phone":   "+919876543210",
			"purpose": "LOGIN",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("resend throttled", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.IssueFunc = func(ctx context.Context, phone, purpose string) (*domain.OTPCode, error) {
			return nil, domain.ErrOTPResendLimit
		}
		h := newAuthHandlersForTest(mocks.NewMockAuthService(), otpSvc)

		w := postJSON(t, h.SendOTP, "/api/auth/otp/send", gin.H{
			"phone":   "+919876543210",
			"purpose": "LOGIN",
		})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("delivery failure stays generic", func(t *testing.T) {
		otpSvc := mocks.NewMockOTPService()
		otpSvc.IssueFunc = func(ctx context.Context, phone, purpose string) (*domain.OTPCode, error) {
			return nil, domain.ErrOTPDeliveryFailed
		}
		h := newAuthHandlersForTest(mocks.NewMockAuthService(), otpSvc)

		w := postJSON(t, h.SendOTP, "/api/auth/otp/send", gin.H{
			"phone":   "+919876543210",
			"purpose": "REGISTRATION",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "twilio")
	})

	t.Run("unknown purpose rejected", func(t *testing.T) {
		h := newAuthHandlersForTest(mocks.NewMockAuthService(), mocks.NewMockOTPService())

		w := postJSON(t, h.SendOTP, "/api/auth/otp/send", gin.H{
			"phone":   "+919876543210",
			"purpose": "RESET",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyOTPHandler(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode int
		verified bool
	}{
		{"valid code", nil, http.StatusOK, true},
		{"invalid code", domain.ErrOTPInvalidOrExpired, http.StatusBadRequest, false},
		{"attempt limit", domain.ErrOTPMaxAttempts, http.StatusTooManyRequests, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otpSvc := mocks.NewMockOTPService()
			otpSvc.CheckFunc = func(ctx context.Context, phone, code string) error {
				return tt.svcErr
			}
			h := newAuthHandlersForTest(mocks.NewMockAuthService(), otpSvc)

			w := postJSON(t, h.VerifyOTP, "/api/auth/otp/verify", gin.H{
				"phone": "+919876543210",
				"otp":   "123456",
			})

			assert.Equal(t, tt.wantCode, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.verified, body["verified"])
		})
	}
}

func TestOTPLoginHandler_Success(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginWithOTPFunc = func(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
		return &domain.AuthResult{
			User:      &domain.User{ID: 11, Phone: phone, Role: domain.RolePatient, Status: domain.StatusActive},
			AuthToken: "patient.jwt.token",
			SessionID: "sess-11",
			ExpiresIn: 86400,
		}, nil
	}
	h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

	w := postJSON(t, h.OTPLogin, "/api/auth/otp/login", gin.H{
		"phone": "+919876543210",
		"otp":   "123456",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "patient.jwt.token", cookieValue(t, w, middleware.AuthTokenCookie))
	assert.Contains(t, w.Body.String(), "patient")
}

func TestLogoutHandler_ClearsCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSvc := mocks.NewMockAuthService()
	deleted := ""
	authSvc.LogoutFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}
	h := newAuthHandlersForTest(authSvc, mocks.NewMockOTPService())

	router := gin.New()
	router.POST("/api/auth/logout", func(c *gin.Context) {
		c.Set("session_id", "sess-7")
		h.Logout(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-7", deleted)
	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}
