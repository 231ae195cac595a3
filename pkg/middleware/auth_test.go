package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticResolver struct {
	sessions map[string]Principal
}

func (r *staticResolver) Resolve(token string) (Principal, bool) {
	p, ok := r.sessions[token]
	return p, ok
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("expected error payload")
	}
	return resp.Error.Code
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	resolver := &staticResolver{sessions: map[string]Principal{}}
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Auth(resolver)(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run without credentials")
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	resolver := &staticResolver{sessions: map[string]Principal{}}
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	Auth(resolver)(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run with a dead session")
	}
}

func TestAuthAttachesTokenAndPrincipal(t *testing.T) {
	resolver := &staticResolver{sessions: map[string]Principal{
		"tok-1": {Name: "amina", IsAdmin: true},
	}}

	var gotToken string
	var gotPrincipal Principal
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken, _ = GetToken(r.Context())
		gotPrincipal, _ = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	Auth(resolver)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotToken != "tok-1" {
		t.Errorf("token = %q, want tok-1", gotToken)
	}
	if gotPrincipal.Name != "amina" || !gotPrincipal.IsAdmin {
		t.Errorf("principal = %+v, want amina/admin", gotPrincipal)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	resolver := &staticResolver{sessions: map[string]Principal{}}

	var hadPrincipal bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadPrincipal = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	OptionalAuth(resolver)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if hadPrincipal {
		t.Error("anonymous request should carry no principal")
	}
}

func TestRequireAdmin(t *testing.T) {
	resolver := &staticResolver{sessions: map[string]Principal{
		"admin-tok":  {Name: "amina", IsAdmin: true},
		"viewer-tok": {Name: "bilal", IsAdmin: false},
	}}

	cases := []struct {
		name       string
		token      string
		wantStatus int
		wantRun    bool
	}{
		{"admin passes", "admin-tok", http.StatusOK, true},
		{"non-admin blocked", "viewer-tok", http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			chain := Auth(resolver)(RequireAdmin(okHandler(&called)))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			chain.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if called != tc.wantRun {
				t.Fatalf("handler ran = %v, want %v", called, tc.wantRun)
			}
			if !tc.wantRun {
				if code := errorCode(t, rec.Body.Bytes()); code != "FORBIDDEN" {
					t.Errorf("error code = %q, want FORBIDDEN", code)
				}
			}
		})
	}
}

func TestRequireAdminWithoutPrincipal(t *testing.T) {
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run without a principal")
	}
}
