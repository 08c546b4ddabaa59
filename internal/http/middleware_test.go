package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareBearerPrefixIsCaseSensitive(t *testing.T) {
	tokens := token.NewManager(testAccessSecret, testRefreshSecret, "")
	users := user.NewService(newFakeUserRepo())

	var called bool
	h := AuthMiddleware(tokens, users)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer some-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Error("handler ran with a lowercase bearer prefix")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAuthMiddlewareNoHeader(t *testing.T) {
	tokens := token.NewManager(testAccessSecret, testRefreshSecret, "")
	users := user.NewService(newFakeUserRepo())

	var called bool
	h := AuthMiddleware(tokens, users)(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("called=%v status=%d", called, rec.Code)
	}
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	tokens := token.NewManager(testAccessSecret, testRefreshSecret, "")

	var seenUserID string
	h := OptionalAuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = userIDFromCtx(r)
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous request passes through with no identity.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || seenUserID != "" {
		t.Errorf("anonymous: status=%d userID=%q", rec.Code, seenUserID)
	}

	// A garbage token is ignored, not rejected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seenUserID != "" {
		t.Errorf("garbage token: status=%d userID=%q", rec.Code, seenUserID)
	}

	// A valid token attaches the identity.
	access, err := tokens.IssueAccess("u1", "a@b.com", user.RoleUser)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seenUserID != "u1" {
		t.Errorf("valid token: status=%d userID=%q", rec.Code, seenUserID)
	}
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	var called bool
	h := RequireAdmin(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Error("handler ran without an identity")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	var called bool
	h := CORSMiddleware(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	if called {
		t.Error("preflight reached the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Allow-Origin header")
	}
}
