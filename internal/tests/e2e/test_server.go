package e2e

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	httpx "github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/handlers"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/http/middleware"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/infrastructure/auth"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/infrastructure/repositories"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/services"
)

const casbinModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

var otpCodePattern = regexp.MustCompile(`\d{6}`)

// smsCapture records outbound SMS so tests can read the codes a real user
// would receive on their phone.
type smsCapture struct {
	mu       sync.Mutex
	messages []string
}

func (s *smsCapture) SendSMS(to, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

// LastCode extracts the code from the most recent message.
func (s *smsCapture) LastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.messages)
	code := otpCodePattern.FindString(s.messages[len(s.messages)-1])
	require.NotEmpty(t, code)
	return code
}

// memorySessionRepo stands in for the Redis-backed store.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *memorySessionRepo) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		delete(r.sessions, sessionID)
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func (r *memorySessionRepo) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ domain.SessionRepository = (*memorySessionRepo)(nil)

// TestServer wires the whole portal stack against sqlite and in-memory
// stand-ins for Redis and Twilio.
type TestServer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	SMS      *smsCapture
	UserRepo domain.UserRepository
	Sessions *memorySessionRepo
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.DBUser{}, &repositories.DBOTPCode{}))

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	sessionRepo := newMemorySessionRepo()
	sms := &smsCapture{}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "niramaya-portal", 168*time.Hour)

	otpSvc := services.NewOTPService(otpRepo, sms, nil, services.OTPConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: time.Minute,
	}, log)
	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc, 24*time.Hour, log)
	reviewSvc := services.NewReviewService(userRepo, log)

	enforcer := newTestEnforcer(t)

	ah := handlers.NewAuthHandlers(authSvc, otpSvc, 168*time.Hour, 24*time.Hour, log)
	adminH := handlers.NewAdminHandlers(reviewSvc, userRepo, log)
	ph := handlers.NewPolicyHandlers(services.NewPolicyService(services.NewCasbinEnforcerWrapper(enforcer)))
	pages := handlers.NewPageHandlers()

	jwtmw := middleware.NewAuthMW(tokenSvc, sessionRepo)
	cb := middleware.NewCasbinMW(enforcer)
	policy := middleware.NewAccessPolicyMW(middleware.NewCarrierResolver(tokenSvc, sessionRepo))

	router := httpx.BuildRouter(ah, adminH, ph, pages, jwtmw, cb, policy)

	return &TestServer{
		Router:   router,
		DB:       db,
		SMS:      sms,
		UserRepo: userRepo,
		Sessions: sessionRepo,
	}
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	m, err := casbinmodel.NewModelFromString(casbinModelText)
	require.NoError(t, err)

	// A file adapter in the test temp dir lets SavePolicy succeed.
	policyFile := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(policyFile, nil, 0o600))
	enforcer, err := casbin.NewEnforcer(m, fileadapter.NewAdapter(policyFile))
	require.NoError(t, err)

	policies := [][]string{
		{"role_superadmin", "/api/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_admin", "/api/admin/doctors", "GET"},
		{"role_admin", "/api/admin/doctors/:id/review", "POST"},
		{"role_admin", "/api/auth/me", "GET"},
		{"role_admin", "/api/auth/logout", "POST"},
		{"role_superadmin", "/api/auth/me", "GET"},
		{"role_superadmin", "/api/auth/logout", "POST"},
		{"role_doctor", "/api/auth/me", "GET"},
		{"role_doctor", "/api/auth/logout", "POST"},
		{"role_patient", "/api/auth/me", "GET"},
		{"role_patient", "/api/auth/logout", "POST"},
	}
	for _, p := range policies {
		_, err := enforcer.AddPolicy(p[0], p[1], p[2])
		require.NoError(t, err)
	}
	return enforcer
}

// SeedUser inserts an account directly, bypassing the registration flow.
func (s *TestServer) SeedUser(t *testing.T, user *domain.User, password string) *domain.User {
	t.Helper()
	if password != "" {
		hash, err := auth.NewPasswordService().Hash(password)
		require.NoError(t, err)
		user.PasswordHash = hash
	}
	require.NoError(t, s.UserRepo.Create(context.Background(), user))
	return user
}
