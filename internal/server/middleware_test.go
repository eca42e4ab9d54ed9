package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tailscale.com/client/tailscale/apitype"
	"tailscale.com/tailcfg"
)

type fakeWhoIs struct {
	login string
	err   error
}

func (f fakeWhoIs) WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &apitype.WhoIsResponse{UserProfile: &tailcfg.UserProfile{LoginName: f.login}}, nil
}

func identityHandler(whois WhoIser, got *string) http.Handler {
	return Identity(func() WhoIser { return whois })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = userFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))
}

// TestIdentityDefault verifies requests without X-User act as the local user.
func TestIdentityDefault(t *testing.T) {
	var user string
	rec := httptest.NewRecorder()
	identityHandler(nil, &user).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if user != DefaultUser {
		t.Errorf("user = %q, want %q", user, DefaultUser)
	}
}

func TestIdentityHeader(t *testing.T) {
	var user string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "alex")
	identityHandler(nil, &user).ServeHTTP(httptest.NewRecorder(), req)

	if user != "alex" {
		t.Errorf("user = %q, want alex", user)
	}
}

// TestIdentityTailscale verifies the tailnet login wins over the header.
func TestIdentityTailscale(t *testing.T) {
	var user string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "spoofed")
	identityHandler(fakeWhoIs{login: "alice@example.com"}, &user).ServeHTTP(httptest.NewRecorder(), req)

	if user != "alice@example.com" {
		t.Errorf("user = %q, want alice@example.com", user)
	}
}

func TestIdentityTailscaleUnknownPeer(t *testing.T) {
	var user string
	rec := httptest.NewRecorder()
	identityHandler(fakeWhoIs{err: errors.New("no such peer")}, &user).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if user != "" {
		t.Error("next handler should not be called")
	}
}

// TestUserFromContextDefault verifies the fallback when no identity
// middleware ran.
func TestUserFromContextDefault(t *testing.T) {
	if got := userFromContext(httptest.NewRequest(http.MethodGet, "/", nil)); got != DefaultUser {
		t.Errorf("userFromContext = %q, want %q", got, DefaultUser)
	}
}

// TestRequestIDGenerated verifies a request id is assigned and exposed.
func TestRequestIDGenerated(t *testing.T) {
	var inner string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = requestIDFromContext(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rec.Header().Get("X-Request-ID")
	if got == "" || got != inner {
		t.Errorf("header = %q, context = %q", got, inner)
	}
	if len(got) != 36 {
		t.Errorf("request id %q is not a UUID", got)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

// TestRequestLogging verifies that the logging middleware calls the next handler and records status.
func TestRequestLogging(t *testing.T) {
	log := slog.Default()
	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

// TestCORSHeaders verifies that CORS headers are set on responses.
func TestCORSHeaders(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q, want *", got)
	}
}

// TestCORSPreflight verifies that OPTIONS requests get 204 with CORS headers.
func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

// TestAPIKeyAuth verifies missing and wrong keys are distinguished.
func TestAPIKeyAuth(t *testing.T) {
	handler := APIKeyAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	cases := []struct {
		key  string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"nope", http.StatusForbidden},
		{"secret", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.key != "" {
			req.Header.Set("X-API-Key", tc.key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("key %q: status = %d, want %d", tc.key, rec.Code, tc.want)
		}
	}
}
