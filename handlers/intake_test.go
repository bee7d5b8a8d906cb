package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/intake"
	"github.com/harborlight/portal/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntakeRouter(t *testing.T) (*gin.Engine, *intake.MemoryRepository, *config.Config) {
	t.Helper()
	cfg := testConfig()
	repo := intake.NewMemoryRepository()
	h := NewIntakeHandler(intake.NewService(repo, newStubStore()))

	r := gin.New()
	api := r.Group("/api/v1", middleware.OptionalAuth(cfg.JWT.Secret))
	h.Register(api)
	return r, repo, cfg
}

func TestSubmitInquiry(t *testing.T) {
	r, repo, _ := newIntakeRouter(t)

	w := postJSON(r, "/api/v1/inquiries", `{"name":"Jonas Berg","email":"jonas@example.com","message":"Do you take new patients?"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var got intake.Inquiry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "new", got.Status)
	require.Len(t, repo.Inquiries, 1)
}

func TestSubmitInquiryValidation(t *testing.T) {
	r, _, _ := newIntakeRouter(t)
	w := postJSON(r, "/api/v1/inquiries", `{"name":"Jonas Berg","email":"not-an-email","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func patientFormRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("patientName", "Jonas Berg"))
	require.NoError(t, mw.WriteField("documentType", "insurance-card"))
	fw, err := mw.CreateFormFile("document", "card.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/patient-forms", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSubmitPatientFormAnonymous(t *testing.T) {
	r, repo, _ := newIntakeRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, patientFormRequest(t, ""))
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, repo.Forms, 1)
	assert.Nil(t, repo.Forms[0].UploadedBy)
	assert.Equal(t, "uploaded", repo.Forms[0].Status)
}

func TestSubmitPatientFormRecordsUploader(t *testing.T) {
	r, repo, cfg := newIntakeRouter(t)
	token := issueToken(t, cfg, "u1", "a@example.com", "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, patientFormRequest(t, token))
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, repo.Forms, 1)
	require.NotNil(t, repo.Forms[0].UploadedBy)
	assert.Equal(t, "u1", *repo.Forms[0].UploadedBy)
}

func TestSubmitPatientFormMissingFile(t *testing.T) {
	r, _, _ := newIntakeRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("patientName", "Jonas Berg"))
	require.NoError(t, mw.WriteField("documentType", "insurance-card"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/patient-forms", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewsletterSubscribe(t *testing.T) {
	r, repo, _ := newIntakeRouter(t)

	w := postJSON(r, "/api/v1/newsletter", `{"email":"news@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(r, "/api/v1/newsletter", `{"email":"news@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, "re-subscribing is accepted silently")
	assert.Len(t, repo.Subscribers, 1)
}
