package auth

import (
	"context"
	"errors"
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrInvalidClaims   = errors.New("invalid token claims")
	ErrMissingTenantID = errors.New("missing tenant_id in claims")
	ErrMissingUserID   = errors.New("missing user_id in claims")
)

// Claims represents the custom JWT claims of a device session token
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// TokenSource supplies the device's current raw session token.
// An empty token means no one is signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token, typically loaded from config
type StaticTokenSource string

// Token implements TokenSource
func (s StaticTokenSource) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// SessionService resolves the authenticated principal from a signed
// session token. It implements sale.AuthProvider.
type SessionService struct {
	secret []byte
	issuer string
	source TokenSource
}

// NewSessionService creates a session service with the given token source
func NewSessionService(cfg config.AuthConfig, source TokenSource) *SessionService {
	if source == nil {
		source = StaticTokenSource(cfg.SessionToken)
	}
	return &SessionService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		source: source,
	}
}

// CurrentUser resolves the current authenticated principal.
// Any absent, expired or malformed session yields shared.ErrUnauthorized.
func (s *SessionService) CurrentUser(ctx context.Context) (*sale.Principal, error) {
	token, err := s.source.Token(ctx)
	if err != nil || token == "" {
		return nil, shared.ErrUnauthorized
	}

	claims, err := s.validateToken(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return &sale.Principal{
		UserID:   userID,
		TenantID: tenantID,
		Username: claims.Username,
	}, nil
}

// IssueToken signs a session token for the given principal.
// Used when provisioning a device after a successful remote sign-in.
func (s *SessionService) IssueToken(principal sale.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		TenantID: principal.TenantID.String(),
		UserID:   principal.UserID.String(),
		Username: principal.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// validateToken parses and verifies a session token
func (s *SessionService) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenantID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// Ensure SessionService implements sale.AuthProvider
var _ sale.AuthProvider = (*SessionService)(nil)
