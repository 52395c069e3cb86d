package e2e

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// The full doctor lifecycle: apply, get held at pending, get approved by an
// admin, then log in and reach the doctor zone.
func TestDoctorLifecycle(t *testing.T) {
	ts := NewTestServer(t)
	doctor, closeDoctor := newPortalClient(t, ts)
	defer closeDoctor()
	admin, closeAdmin := newPortalClient(t, ts)
	defer closeAdmin()

	ts.SeedUser(t, &domain.User{
		Email:  "admin@example.com",
		Phone:  "+911111111111",
		Role:   domain.RoleAdmin,
		Status: domain.StatusActive,
	}, "admin-pass")

	// Apply.
	resp, body := doctor.postJSON("/api/auth/register", gin.H{
		"phone":          "+919876543210",
		"password":       "doctor-pass",
		"full_name":      "Dr. Asha Rao",
		"license_number": "MH-12345",
		"specialty":      "Cardiology",
		"experience":     8,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	doctorID := data["user_id"].(float64)

	// Login while pending is refused with the pending status.
	resp, body = doctor.postJSON("/api/auth/doctor/login", gin.H{
		"phone":    "+919876543210",
		"password": "doctor-pass",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])

	// An admin logs in and approves the application.
	resp, _ = admin.postJSON("/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = admin.postJSON(reviewPath(doctorID), gin.H{"action": "approve"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "approved", data["status"])

	// Approval is terminal.
	resp, _ = admin.postJSON(reviewPath(doctorID), gin.H{"action": "reject"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Now the doctor logs in and lands on the doctor dashboard.
	resp, _ = doctor.postJSON("/api/auth/doctor/login", gin.H{
		"phone":    "+919876543210",
		"password": "doctor-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doctor.get("/doctor/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "doctor_dashboard", body["page"])

	resp, body = doctor.get("/api/auth/me")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "doctor", data["role"])
	assert.Equal(t, "approved", data["status"])
}

func TestRejectedDoctorRouting(t *testing.T) {
	ts := NewTestServer(t)
	doctor, closeDoctor := newPortalClient(t, ts)
	defer closeDoctor()

	applied := ts.SeedUser(t, &domain.User{
		Phone:  "+919876543210",
		Role:   domain.RolePendingDoctor,
		Status: domain.StatusInactive,
	}, "doctor-pass")
	require.NotZero(t, applied.ID)

	resp, body := doctor.postJSON("/api/auth/doctor/login", gin.H{
		"phone":    "+919876543210",
		"password": "doctor-pass",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "rejected", body["status"])

	// Wrong password on the same account stays indistinct.
	resp, _ = doctor.postJSON("/api/auth/doctor/login", gin.H{
		"phone":    "+919876543210",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func reviewPath(id float64) string {
	return "/api/admin/doctors/" + strconv.Itoa(int(id)) + "/review"
}
