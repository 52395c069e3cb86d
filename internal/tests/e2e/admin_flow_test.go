package e2e

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

func TestAdminEmailLoginAndLogout(t *testing.T) {
	ts := NewTestServer(t)
	admin, closeAdmin := newPortalClient(t, ts)
	defer closeAdmin()

	ts.SeedUser(t, &domain.User{
		Email:  "admin@example.com",
		Phone:  "+911111111111",
		Role:   domain.RoleAdmin,
		Status: domain.StatusActive,
	}, "admin-pass")

	resp, body := admin.postJSON("/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["auth_token"])

	// Both cookies came back and open the admin dashboard.
	resp, body = admin.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin_dashboard", body["page"])

	// But not the superadmin zone.
	resp, _ = admin.get("/admin/super")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))

	// Nor the superadmin-only policy API.
	resp, _ = admin.get("/api/admin/policies")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = admin.postJSON("/api/auth/logout", gin.H{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The session is gone; the cleared cookies no longer open pages.
	resp, _ = admin.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestPatientCannotUseEmailLogin(t *testing.T) {
	ts := NewTestServer(t)
	client, closeClient := newPortalClient(t, ts)
	defer closeClient()

	// Even with a password hash on record, the patient role is refused on the
	// email path.
	ts.SeedUser(t, &domain.User{
		Email:  "patient@example.com",
		Phone:  "+912222222222",
		Role:   domain.RolePatient,
		Status: domain.StatusActive,
	}, "some-pass")

	resp, _ := client.postJSON("/api/auth/login", gin.H{
		"email":    "patient@example.com",
		"password": "some-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSuperAdminPolicyManagement(t *testing.T) {
	ts := NewTestServer(t)
	super, closeSuper := newPortalClient(t, ts)
	defer closeSuper()

	ts.SeedUser(t, &domain.User{
		Email:  "root@example.com",
		Phone:  "+913333333333",
		Role:   domain.RoleSuperAdmin,
		Status: domain.StatusActive,
	}, "root-pass")

	resp, _ := super.postJSON("/api/auth/login", gin.H{
		"email":    "root@example.com",
		"password": "root-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := super.get("/api/admin/policies")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"])

	resp, _ = super.postJSON("/api/admin/policies", gin.H{
		"role":     "role_admin",
		"resource": "/api/admin/reports",
		"action":   "GET",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Adding the same rule again conflicts.
	resp, _ = super.postJSON("/api/admin/policies", gin.H{
		"role":     "role_admin",
		"resource": "/api/admin/reports",
		"action":   "GET",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
