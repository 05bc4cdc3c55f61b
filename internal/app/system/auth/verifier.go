// internal/app/system/auth/verifier.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Verifier turns a bearer credential into a verified Principal. Any identity
// provider that satisfies it can be plugged into RequirePrincipal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// FirebaseJWKSURL publishes the public keys that sign Firebase ID tokens.
const FirebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// FirebaseIssuer returns the iss claim Firebase uses for a project.
func FirebaseIssuer(projectID string) string {
	return "https://securetoken.google.com/" + projectID
}

// idTokenClaims are the claims read from an ID token.
type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// JWTConfig configures a JWTVerifier.
type JWTConfig struct {
	// Keyfunc resolves the verification key for a token.
	Keyfunc jwt.Keyfunc
	// Issuer and Audience must match the token's iss and aud claims.
	Issuer   string
	Audience string
	// Methods lists the accepted signing algorithms. Defaults to RS256.
	Methods []string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// JWTVerifier verifies signed ID tokens.
type JWTVerifier struct {
	cfg    JWTConfig
	parser *jwt.Parser
}

// NewJWTVerifier builds a verifier from cfg.
func NewJWTVerifier(cfg JWTConfig) (*JWTVerifier, error) {
	if cfg.Keyfunc == nil {
		return nil, errors.New("auth: keyfunc is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("auth: issuer and audience are required")
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{"RS256"}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods(cfg.Methods),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(cfg.Now),
	)
	return &JWTVerifier{cfg: cfg, parser: parser}, nil
}

// Verify checks the token's signature and claims and returns its principal.
// Every failure is an apperr.Unauthenticated.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperr.New(apperr.Unauthenticated, "missing bearer token")
	}

	var claims idTokenClaims
	if _, err := v.parser.ParseWithClaims(token, &claims, v.cfg.Keyfunc); err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid or expired token", err)
	}
	if claims.Subject == "" {
		return nil, apperr.New(apperr.Unauthenticated, "token has no subject")
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, apperr.New(apperr.Unauthenticated, "token has no email")
	}

	return &Principal{
		Email:       email,
		SubjectID:   claims.Subject,
		DisplayName: claims.Name,
		VerifiedAt:  v.cfg.Now().UTC(),
	}, nil
}

// NewFirebaseVerifier verifies Firebase ID tokens for projectID against the
// published JWKS, refreshed in the background. The returned stop function
// ends the refresh goroutine.
func NewFirebaseVerifier(ctx context.Context, projectID, jwksURL string, logger *zap.Logger) (*JWTVerifier, func(), error) {
	if jwksURL == "" {
		jwksURL = FirebaseJWKSURL
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:    ctx,
		Client: &http.Client{Timeout: 10 * time.Second},
		RefreshErrorHandler: func(err error) {
			logger.Warn("JWKS background refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load JWKS from %s: %w", jwksURL, err)
	}

	v, err := NewJWTVerifier(JWTConfig{
		Keyfunc:  jwks.Keyfunc,
		Issuer:   FirebaseIssuer(projectID),
		Audience: projectID,
	})
	if err != nil {
		jwks.EndBackground()
		return nil, nil, err
	}
	return v, jwks.EndBackground, nil
}
