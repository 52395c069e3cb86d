package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	tokenTTL  time.Duration
}

// NewJWTService creates a new JWT service. tokenTTL is the lifetime of the
// authToken cookie carrier.
func NewJWTService(secretKey string, issuer string, tokenTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		tokenTTL:  tokenTTL,
	}
}

// GenerateAuthToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAuthToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"role":   user.ClaimRole(),
		"status": user.ClaimStatus(),
		"iss":    j.issuer,
		"iat":    now.Unix(),
		"exp":    now.Add(j.tokenTTL).Unix(),
		"jti":    uuid.NewString(),
	}
	if user.Phone != "" {
		claims["phone"] = user.Phone
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken implements domain.TokenService. This is the authoritative
// check: signature and expiry are both enforced.
func (j *JWTServiceImpl) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil || !token.Valid {
		// The parser already enforces exp; surface expiry distinctly so the
		// API can tell the client to log in again rather than reject outright.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := claimsFromMap(mapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	return claims, nil
}

// PeekClaims implements domain.TokenService. It decodes the payload segment
// without checking the signature and is only suitable for routing decisions:
// fast redirects for UX, never authorization of state mutations. Any
// malformation (wrong segment count, bad base64, bad JSON) yields nil so the
// caller treats the request as unauthenticated.
func (j *JWTServiceImpl) PeekClaims(tokenString string) *domain.Claims {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}

	claims, ok := claimsFromMap(raw)
	if !ok {
		return nil
	}
	return claims
}

func claimsFromMap(m map[string]interface{}) (*domain.Claims, bool) {
	sub, ok := m["sub"].(float64)
	if !ok {
		return nil, false
	}
	role, ok := m["role"].(string)
	if !ok {
		return nil, false
	}
	status, ok := m["status"].(string)
	if !ok {
		return nil, false
	}
	exp, ok := m["exp"].(float64)
	if !ok {
		return nil, false
	}

	claims := &domain.Claims{
		SubjectID: uint(sub),
		Role:      role,
		Status:    status,
		ExpiresAt: int64(exp),
	}
	if phone, ok := m["phone"].(string); ok {
		claims.Phone = phone
	}
	return claims, true
}
