package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/config"
	httpx "github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/handlers"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc, cfg.AuthTokenTTL, cfg.SessionTTL, c.Log)
	adminH := handlers.NewAdminHandlers(c.ReviewSvc, c.UserRepo, c.Log)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)
	pages := handlers.NewPageHandlers()

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)
	policyMW := middleware.NewAccessPolicyMW(middleware.NewCarrierResolver(c.TokenSvc, c.SessionRepo))

	r := httpx.BuildRouter(authH, adminH, polH, pages, jwtMW, casbinMW, policyMW)

	seedPolicies(c)

	addr := ":" + cfg.Port
	c.Log.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default API authorization rules on first boot.
func seedPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	c.Casbin.E.AddPolicy("role_superadmin", "/api/admin/*", "(GET|POST|PUT|DELETE)")
	c.Casbin.E.AddPolicy("role_admin", "/api/admin/doctors", "GET")
	c.Casbin.E.AddPolicy("role_admin", "/api/admin/doctors/:id/review", "POST")
	c.Casbin.E.AddPolicy("role_admin", "/api/auth/me", "GET")
	c.Casbin.E.AddPolicy("role_admin", "/api/auth/logout", "POST")
	c.Casbin.E.AddPolicy("role_superadmin", "/api/auth/me", "GET")
	c.Casbin.E.AddPolicy("role_superadmin", "/api/auth/logout", "POST")
	c.Casbin.E.AddPolicy("role_doctor", "/api/auth/me", "GET")
	c.Casbin.E.AddPolicy("role_doctor", "/api/auth/logout", "POST")
	c.Casbin.E.AddPolicy("role_patient", "/api/auth/me", "GET")
	c.Casbin.E.AddPolicy("role_patient", "/api/auth/logout", "POST")
	_ = c.Casbin.E.SavePolicy()
	c.Log.Info("casbin: seeded default policies")
}
