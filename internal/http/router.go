package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/handlers"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, adminH *handlers.AdminHandlers, ph *handlers.PolicyHandlers, pages *handlers.PageHandlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware, policy *middleware.AccessPolicyMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.RegisterDoctor)
	auth.POST("/patient/register", ah.RegisterPatient)
	auth.POST("/login", ah.Login)
	auth.POST("/doctor/login", ah.DoctorLogin)
	auth.POST("/otp/send", ah.SendOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/otp/login", ah.OTPLogin)

	v := r.Group("/api").Use(jwtmw.Verify(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	adm := r.Group("/api/admin").Use(jwtmw.Verify(), cb.Enforce())
	adm.GET("/doctors", adminH.ListDoctors)
	adm.POST("/doctors/:id/review", adminH.ReviewDoctor)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	// Page zones: the route access policy runs before every page handler and
	// answers with redirects, never errors.
	pg := r.Group("").Use(policy.Gate())
	pg.GET("/", pages.Page("landing"))
	pg.GET("/login", pages.Page("patient_login"))
	pg.GET("/admin/login", pages.Page("admin_login"))
	pg.GET("/doctor/login", pages.Page("doctor_login"))
	pg.GET("/doctor/pending", pages.Page("doctor_pending"))
	pg.GET("/doctor/rejected", pages.Page("doctor_rejected"))
	pg.GET("/admin/super", pages.Page("superadmin_home"))
	pg.GET("/admin/super/doctors", pages.Page("superadmin_doctors"))
	pg.GET("/admin/dashboard", pages.Page("admin_dashboard"))
	pg.GET("/admin/doctors", pages.Page("admin_doctors"))
	pg.GET("/doctor/dashboard", pages.Page("doctor_dashboard"))
	pg.GET("/doctor/appointments", pages.Page("doctor_appointments"))
	pg.GET("/dashboard", pages.Page("patient_dashboard"))
	pg.GET("/appointments", pages.Page("appointments"))
	pg.GET("/profile", pages.Page("profile"))
	pg.GET("/records", pages.Page("records"))
	pg.GET("/support", pages.Page("support"))

	return r
}
