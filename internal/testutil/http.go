package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/auth"
)

// PrincipalFor returns a verified principal for email.
func PrincipalFor(email string) *auth.Principal {
	return &auth.Principal{
		Email:       email,
		SubjectID:   "uid-" + email,
		DisplayName: "Test " + email,
		VerifiedAt:  time.Now().UTC(),
	}
}

// WithPrincipal adds a principal for email to the request context. This
// bypasses token verification.
func WithPrincipal(r *http.Request, email string) *http.Request {
	return auth.WithTestPrincipal(r, PrincipalFor(email))
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request whose body is v encoded as JSON.
func NewJSONRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates a JSON request (v may be nil) carrying a
// principal for email.
func NewAuthenticatedRequest(t *testing.T, method, target, email string, v any) *http.Request {
	t.Helper()
	var req *http.Request
	if v == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = NewJSONRequest(t, method, target, v)
	}
	return WithPrincipal(req, email)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// DecodeJSON decodes the response body into v.
func (r *ResponseRecorder) DecodeJSON(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, r.Body.String())
	}
}

// ErrorKind returns the "error" field of a JSON error response.
func (r *ResponseRecorder) ErrorKind(t *testing.T) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.DecodeJSON(t, &body)
	return body.Error
}
