package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	testProject = "clubsphere-test"
	testKID     = "test-kid"
)

var testSecret = []byte("test-signing-secret-0123456789abcdef")

func newTestVerifier(t *testing.T) *auth.JWTVerifier {
	t.Helper()
	given := keyfunc.NewGiven(map[string]keyfunc.GivenKey{
		testKID: keyfunc.NewGivenHMAC(testSecret, keyfunc.GivenKeyOptions{Algorithm: "HS256"}),
	})
	v, err := auth.NewJWTVerifier(auth.JWTConfig{
		Keyfunc:  given.Keyfunc,
		Issuer:   auth.FirebaseIssuer(testProject),
		Audience: testProject,
		Methods:  []string{"HS256"},
	})
	if err != nil {
		t.Fatalf("NewJWTVerifier: %v", err)
	}
	return v
}

func signToken(t *testing.T, claims jwt.MapClaims, kid string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   auth.FirebaseIssuer(testProject),
		"aud":   testProject,
		"sub":   "uid-123",
		"email": "a@x.com",
		"name":  "Alice",
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestVerify_Valid(t *testing.T) {
	v := newTestVerifier(t)

	p, err := v.Verify(context.Background(), signToken(t, validClaims(), testKID))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if p.Email != "a@x.com" || p.SubjectID != "uid-123" || p.DisplayName != "Alice" {
		t.Errorf("unexpected principal: %+v", p)
	}
	if p.VerifiedAt.IsZero() {
		t.Error("expected VerifiedAt to be set")
	}
}

func TestVerify_Rejects(t *testing.T) {
	v := newTestVerifier(t)

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
		kid    string
	}{
		{"expired", func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }, testKID},
		{"missing exp", func(c jwt.MapClaims) { delete(c, "exp") }, testKID},
		{"wrong audience", func(c jwt.MapClaims) { c["aud"] = "other-project" }, testKID},
		{"wrong issuer", func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" }, testKID},
		{"no email", func(c jwt.MapClaims) { delete(c, "email") }, testKID},
		{"no subject", func(c jwt.MapClaims) { delete(c, "sub") }, testKID},
		{"unknown kid", func(c jwt.MapClaims) {}, "other-kid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(claims)
			_, err := v.Verify(context.Background(), signToken(t, claims, tt.kid))
			if !apperr.Is(err, apperr.Unauthenticated) {
				t.Errorf("expected Unauthenticated, got %v", err)
			}
		})
	}
}

func TestVerify_Garbage(t *testing.T) {
	v := newTestVerifier(t)
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		if _, err := v.Verify(context.Background(), tok); !apperr.Is(err, apperr.Unauthenticated) {
			t.Errorf("Verify(%q): expected Unauthenticated, got %v", tok, err)
		}
	}
}

func TestNewJWTVerifier_RequiresConfig(t *testing.T) {
	if _, err := auth.NewJWTVerifier(auth.JWTConfig{}); err == nil {
		t.Error("expected error without keyfunc")
	}
	given := keyfunc.NewGiven(map[string]keyfunc.GivenKey{})
	if _, err := auth.NewJWTVerifier(auth.JWTConfig{Keyfunc: given.Keyfunc}); err == nil {
		t.Error("expected error without issuer and audience")
	}
}

func protected(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	mw := auth.NewMiddleware(newTestVerifier(t), zap.NewNop())
	return mw.RequirePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		p, ok := auth.CurrentPrincipal(r)
		if !ok {
			t.Error("expected principal in context")
			return
		}
		w.Header().Set("X-Email", p.Email)
		w.WriteHeader(http.StatusOK)
	})), &called
}

func TestRequirePrincipal_MissingToken(t *testing.T) {
	h, called := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *called {
		t.Error("next handler must not run")
	}
}

func TestRequirePrincipal_InvalidToken(t *testing.T) {
	h, called := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *called {
		t.Error("next handler must not run")
	}
}

func TestRequirePrincipal_ValidToken(t *testing.T) {
	h, called := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(), testKID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !*called {
		t.Error("next handler should run")
	}
	if got := rec.Header().Get("X-Email"); got != "a@x.com" {
		t.Errorf("principal email = %q", got)
	}
}

func TestWithTestPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := auth.CurrentPrincipal(req); ok {
		t.Fatal("expected no principal on a fresh request")
	}
	req = auth.WithTestPrincipal(req, &auth.Principal{Email: "t@x.com"})
	p, ok := auth.CurrentPrincipal(req)
	if !ok || p.Email != "t@x.com" {
		t.Errorf("CurrentPrincipal = %+v, %v", p, ok)
	}
}
