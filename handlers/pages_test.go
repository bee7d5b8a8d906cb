package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageRouter(t *testing.T) (*gin.Engine, func(id, role string) string) {
	t.Helper()
	cfg := testConfig()
	r := gin.New()
	NewPageHandler(cfg).Register(r)
	return r, func(id, role string) string {
		return issueToken(t, cfg, id, id+"@example.com", role)
	}
}

func getPage(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnonymousPortalRedirectsToLogin(t *testing.T) {
	r, _ := newPageRouter(t)
	w := getPage(r, "/portal", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAnonymousAdminRedirectsToAdminLogin(t *testing.T) {
	r, _ := newPageRouter(t)
	for _, path := range []string{"/admin", "/admin/patients", "/admin/blog"} {
		w := getPage(r, path, "")
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}

func TestUserOnAdminPageSilentlyRedirectsToPortal(t *testing.T) {
	r, token := newPageRouter(t)
	w := getPage(r, "/admin/analytics", token("u1", "user"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/portal", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "error")
}

func TestUserReachesPortalAndBooking(t *testing.T) {
	r, token := newPageRouter(t)
	tok := token("u1", "user")
	assert.Equal(t, http.StatusOK, getPage(r, "/portal", tok).Code)
	assert.Equal(t, http.StatusOK, getPage(r, "/book", tok).Code)
}

func TestAdminReachesAdminPages(t *testing.T) {
	r, token := newPageRouter(t)
	tok := token("adm", "admin")
	for _, path := range []string{"/admin", "/admin/analytics", "/admin/patients", "/admin/practitioners", "/admin/services", "/admin/blog"} {
		assert.Equal(t, http.StatusOK, getPage(r, path, tok).Code, path)
	}
}

func TestExpiredTokenTreatedAsAnonymous(t *testing.T) {
	r, _ := newPageRouter(t)
	w := getPage(r, "/portal", "not-a-token")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginPagesAreOpen(t *testing.T) {
	r, _ := newPageRouter(t)
	for _, path := range []string{"/login", "/admin/login", "/signup"} {
		assert.Equal(t, http.StatusOK, getPage(r, path, "").Code, path)
	}
}
