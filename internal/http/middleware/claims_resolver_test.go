package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/mocks"
)

func resolverContext(cookies map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	c.Request = req
	return c
}

func TestCarrierResolver_TokenCarrierWins(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.PeekClaimsFunc = func(token string) *domain.Claims {
		require.Equal(t, "some.jwt.token", token)
		return &domain.Claims{SubjectID: 7, Role: domain.ClaimRolePatient, Status: "active"}
	}
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		t.Fatal("session lookup must not run when the token decodes")
		return nil, nil
	}

	resolver := NewCarrierResolver(tokenSvc, sessionRepo)
	claims := resolver.Resolve(resolverContext(map[string]string{
		AuthTokenCookie: "some.jwt.token",
		SessionCookie:   "sess-1",
	}))

	require.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.SubjectID)
}

func TestCarrierResolver_FallsBackToSession(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{
			ID:        sessionID,
			UserID:    9,
			Role:      domain.ClaimRoleDoctor,
			Status:    domain.ClaimStatusApproved,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}

	resolver := NewCarrierResolver(tokenSvc, sessionRepo)

	t.Run("undecodable token falls through", func(t *testing.T) {
		claims := resolver.Resolve(resolverContext(map[string]string{
			AuthTokenCookie: "garbage",
			SessionCookie:   "sess-9",
		}))
		require.NotNil(t, claims)
		assert.Equal(t, uint(9), claims.SubjectID)
		assert.Equal(t, domain.ClaimRoleDoctor, claims.Role)
	})

	t.Run("session cookie alone resolves", func(t *testing.T) {
		claims := resolver.Resolve(resolverContext(map[string]string{
			SessionCookie: "sess-9",
		}))
		require.NotNil(t, claims)
		assert.Equal(t, domain.ClaimStatusApproved, claims.Status)
	})
}

func TestCarrierResolver_Unauthenticated(t *testing.T) {
	resolver := NewCarrierResolver(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

	t.Run("no cookies", func(t *testing.T) {
		assert.Nil(t, resolver.Resolve(resolverContext(nil)))
	})

	t.Run("unknown session", func(t *testing.T) {
		assert.Nil(t, resolver.Resolve(resolverContext(map[string]string{
			SessionCookie: "gone",
		})))
	})
}
