package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
	"github.com/harborlight/portal/internal/sessions"
	"github.com/harborlight/portal/internal/tokens"
	"github.com/harborlight/portal/internal/users"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fake user repo
type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	seq     int
	getErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

// fake sessions repo
type fakeSessionsRepo struct {
	store map[string]*sessions.Session
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *sessions.Session) error {
	if f.store == nil {
		f.store = map[string]*sessions.Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}

func (f *fakeSessionsRepo) GetByRefresh(ctx context.Context, refresh string) (*sessions.Session, error) {
	return f.store[refresh], nil
}

func (f *fakeSessionsRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	return cfg
}

func newAuthRouter(cfg *config.Config) (*gin.Engine, *users.Service, *sessions.Service) {
	uSvc := users.NewService(newFakeUserRepo(), cfg.Admin)
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, uSvc, sSvc)
	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r, uSvc, sSvc
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupIssuesTokens(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"new@example.com","password":"hunter22","firstName":"New","lastName":"Patient"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.NotEmpty(t, got["accessToken"])
	assert.NotEmpty(t, got["refreshToken"])
	user := got["user"].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	_, leaked := user["passwordHash"]
	assert.False(t, leaked, "password hash must not serialize")
}

func TestSignupSeedAdminGetsAdminRole(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.SeedEmails = []string{"owner@example.com"}
	r, _, _ := newAuthRouter(cfg)

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"Owner@Example.com","password":"hunter22","firstName":"Own","lastName":"Er"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	user := got["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])

	claims, err := tokens.ParseAccessToken(cfg.JWT.Secret, got["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginSettlesRoleFromStore(t *testing.T) {
	cfg := testConfig()
	repo := newFakeUserRepo()
	uSvc := users.NewService(repo, cfg.Admin)
	h := NewAuthHandler(cfg, uSvc, sessions.NewService(&fakeSessionsRepo{}))
	r := gin.New()
	h.Register(r.Group("/api/v1"))

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"x@y.com","password":"hunter22","firstName":"X","lastName":"Y"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// promote the stored account; the next login must pick it up
	repo.byEmail["x@y.com"].Role = models.RoleAdmin

	w2 := postJSON(r, "/api/v1/auth/login", `{"email":"x@y.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w2.Code)
	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&got))
	claims, err := tokens.ParseAccessToken(cfg.JWT.Secret, got["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])

	// a role lookup failure never grants admin
	repo.getErr = fmt.Errorf("store unreachable")
	w3 := postJSON(r, "/api/v1/auth/login", `{"email":"x@y.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w3.Code)
	var got3 map[string]interface{}
	require.NoError(t, json.NewDecoder(w3.Body).Decode(&got3))
	claims3, err := tokens.ParseAccessToken(cfg.JWT.Secret, got3["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user", claims3["role"])
}

func TestSignupDuplicateEmailMappedMessage(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"dup@example.com","password":"hunter22","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/v1/auth/signup", `{"email":"dup@example.com","password":"hunter22","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "This email is already registered. Please login instead.", got["error"])
}

func TestSignupShortPasswordMappedMessage(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"a@example.com","password":"abc","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Password should be at least 6 characters.", got["error"])
}

func TestLoginWrongPasswordMappedMessage(t *testing.T) {
	r, _, _ := newAuthRouter(testConfig())

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"a@example.com","password":"hunter22","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/v1/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Invalid credentials. Please check your email and password.", got["error"])
}

func TestRefreshSuccessAndInvalid(t *testing.T) {
	cfg := testConfig()
	r, _, _ := newAuthRouter(cfg)

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"a@example.com","password":"hunter22","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var signup map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&signup))

	w = postJSON(r, "/api/v1/auth/refresh", fmt.Sprintf(`{"refreshToken":"%s"}`, signup["refreshToken"]))
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.NotEmpty(t, got["accessToken"])

	w = postJSON(r, "/api/v1/auth/refresh", `{"refreshToken":"does-not-exist"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutDeletesRefreshAndBlacklistsAccess(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	cfg := testConfig()
	r, _, sSvc := newAuthRouter(cfg)

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"a@example.com","password":"hunter22","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var signup map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&signup))
	access := signup["accessToken"].(string)
	refresh := signup["refreshToken"].(string)

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", strings.NewReader(fmt.Sprintf(`{"refreshToken":"%s"}`, refresh)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	sess, err := sSvc.ValidateRefresh(context.Background(), refresh)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	listed, err := sessions.IsAccessTokenBlacklisted(context.Background(), access)
	assert.NoError(t, err)
	assert.True(t, listed)
}
