package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/blog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlogRouter(t *testing.T) (*gin.Engine, *blog.Service) {
	t.Helper()
	svc := blog.NewService(blog.NewMemoryRepository(), newStubStore())
	h := NewBlogHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	h.Register(api)
	// the auth middlewares are exercised in the appointment tests; here the
	// admin routes are mounted bare to focus on the editor behavior
	h.RegisterAdmin(api.Group("/admin"))
	return r, svc
}

func postMultipartData(t *testing.T, r *gin.Engine, path, data string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("data", data))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostDerivesSlug(t *testing.T) {
	r, _ := newBlogRouter(t)

	w := postMultipartData(t, r, "/api/v1/admin/posts", `{"title":"Hello, World!","content":"body"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var got blog.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "hello-world", got.Slug)
}

func TestCreatePostSlugConflict(t *testing.T) {
	r, _ := newBlogRouter(t)

	require.Equal(t, http.StatusCreated, postMultipartData(t, r, "/api/v1/admin/posts", `{"title":"Hello, World!","content":"a"}`).Code)
	assert.Equal(t, http.StatusConflict, postMultipartData(t, r, "/api/v1/admin/posts", `{"title":"Hello World","content":"b"}`).Code)
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	r, _ := newBlogRouter(t)

	require.Equal(t, http.StatusCreated, postMultipartData(t, r, "/api/v1/admin/posts", `{"title":"Draft","content":"a"}`).Code)
	require.Equal(t, http.StatusCreated, postMultipartData(t, r, "/api/v1/admin/posts", `{"title":"Live","content":"a","published":true}`).Code)

	req := httptest.NewRequest("GET", "/api/v1/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list []*blog.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "live", list[0].Slug)

	req = httptest.NewRequest("GET", "/api/v1/posts/slug/draft", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/posts/slug/live", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
