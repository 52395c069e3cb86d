package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// Zone classifies a request path into one access-policy group.
type Zone int

const (
	ZonePublic Zone = iota
	ZoneSuperAdmin
	ZoneAdmin
	ZoneDoctor
	ZonePatient
)

func (z Zone) String() string {
	switch z {
	case ZoneSuperAdmin:
		return "super_admin"
	case ZoneAdmin:
		return "admin"
	case ZoneDoctor:
		return "doctor"
	case ZonePatient:
		return "patient"
	default:
		return "public"
	}
}

// Cookie names for the two claim carriers.
const (
	AuthTokenCookie = "authToken"
	SessionCookie   = "portal_session"
)

// Pages that stay public even though they sit under a protected prefix:
// login pages and the doctor status pages a gated doctor is sent to.
var publicPages = map[string]bool{
	"/admin/login":     true,
	"/doctor/login":    true,
	"/doctor/pending":  true,
	"/doctor/rejected": true,
	"/login":           true,
}

// zoneRules maps path prefixes to zones, ordered most-specific first so
// /admin/super wins over /admin.
var zoneRules = []struct {
	prefix string
	zone   Zone
}{
	{"/admin/super", ZoneSuperAdmin},
	{"/admin", ZoneAdmin},
	{"/doctor", ZoneDoctor},
	{"/dashboard", ZonePatient},
	{"/appointments", ZonePatient},
	{"/profile", ZonePatient},
	{"/records", ZonePatient},
	{"/support", ZonePatient},
}

// zoneRoles holds the claim roles each protected zone accepts.
var zoneRoles = map[Zone][]string{
	ZoneSuperAdmin: {domain.ClaimRoleSuperAdmin},
	ZoneAdmin:      {domain.ClaimRoleAdmin, domain.ClaimRoleSuperAdmin},
	ZoneDoctor:     {domain.ClaimRoleDoctor},
	ZonePatient:    {domain.ClaimRolePatient},
}

// ClassifyPath returns the zone owning the path. Login and status pages are
// public regardless of their prefix.
func ClassifyPath(path string) Zone {
	if publicPages[path] {
		return ZonePublic
	}
	for _, rule := range zoneRules {
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return rule.zone
		}
	}
	return ZonePublic
}

// LoginPath returns the login page for a protected zone.
func LoginPath(zone Zone) string {
	switch zone {
	case ZoneSuperAdmin, ZoneAdmin:
		return "/admin/login"
	case ZoneDoctor:
		return "/doctor/login"
	default:
		return "/login"
	}
}

// HomePath maps a claim role to that role's home page. It is total over all
// role strings: an unknown role goes to the landing page, so a mismatch
// always has somewhere to land.
func HomePath(role string) string {
	switch role {
	case domain.ClaimRoleSuperAdmin:
		return "/admin/super"
	case domain.ClaimRoleAdmin:
		return "/admin/dashboard"
	case domain.ClaimRoleDoctor:
		return "/doctor/dashboard"
	case domain.ClaimRolePatient:
		return "/dashboard"
	default:
		return "/"
	}
}

// zoneAccepts reports whether the claim role may enter the zone.
func zoneAccepts(zone Zone, role string) bool {
	for _, r := range zoneRoles[zone] {
		if r == role {
			return true
		}
	}
	return false
}

// DoctorStatusRedirect returns the status page an unapproved doctor is sent
// to. Statuses other than pending/rejected fall through to the dashboard.
func DoctorStatusRedirect(status string) (string, bool) {
	switch status {
	case domain.ClaimStatusPending:
		return "/doctor/pending", true
	case domain.ClaimStatusRejected:
		return "/doctor/rejected", true
	default:
		return "", false
	}
}

// ClaimsResolver turns whatever carriers ride on the request into the shared
// claim shape. A nil result means unauthenticated.
type ClaimsResolver interface {
	Resolve(c *gin.Context) *domain.Claims
}

// AccessPolicyMW evaluates the route access policy ahead of every page
// handler. It works on peeked, advisory claims: its only outputs are
// redirects, never state changes, so the unverified fast path is acceptable
// here. Handlers that mutate state run behind the authoritative middleware
// instead.
type AccessPolicyMW struct {
	resolver ClaimsResolver
}

// NewAccessPolicyMW creates the route access policy middleware
func NewAccessPolicyMW(resolver ClaimsResolver) *AccessPolicyMW {
	return &AccessPolicyMW{resolver: resolver}
}

// Gate returns the middleware function
func (mw *AccessPolicyMW) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		zone := ClassifyPath(c.Request.URL.Path)
		if zone == ZonePublic {
			c.Next()
			return
		}

		claims := mw.resolver.Resolve(c)
		if claims == nil {
			// Absent or undecodable token: back to this zone's login page.
			redirect(c, LoginPath(zone))
			return
		}

		if !zoneAccepts(zone, claims.Role) {
			// Self-healing: send the caller to where their actual role
			// belongs instead of serving an error page.
			redirect(c, HomePath(claims.Role))
			return
		}

		if zone == ZoneDoctor && claims.Status != domain.ClaimStatusApproved {
			if target, ok := DoctorStatusRedirect(claims.Status); ok {
				redirect(c, target)
				return
			}
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func redirect(c *gin.Context, target string) {
	c.Redirect(http.StatusFound, target)
	c.Abort()
}
