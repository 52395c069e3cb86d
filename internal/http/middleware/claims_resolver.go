package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// CarrierResolver collapses the two claim carriers to the one claim shape
// the access policy evaluates: the signed authToken cookie is peeked without
// a signature check, the opaque session cookie is resolved server-side.
// Either carrier failing silently falls through to the next; all failures
// together mean unauthenticated.
type CarrierResolver struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewCarrierResolver creates a resolver over both carriers
func NewCarrierResolver(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *CarrierResolver {
	return &CarrierResolver{tokenSvc: tokenSvc, sessionRepo: sessionRepo}
}

// Resolve implements ClaimsResolver
func (r *CarrierResolver) Resolve(c *gin.Context) *domain.Claims {
	if token, err := c.Cookie(AuthTokenCookie); err == nil && token != "" {
		if claims := r.tokenSvc.PeekClaims(token); claims != nil {
			return claims
		}
	}

	if sessionID, err := c.Cookie(SessionCookie); err == nil && sessionID != "" {
		session, err := r.sessionRepo.FindByID(c.Request.Context(), sessionID)
		if err == nil && session != nil {
			return session.Claims()
		}
	}

	return nil
}
