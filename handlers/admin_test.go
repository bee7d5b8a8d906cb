package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/appointments"
	"github.com/harborlight/portal/internal/blog"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
	"github.com/harborlight/portal/internal/practitioners"
	"github.com/harborlight/portal/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsCounts(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	userRepo.Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser})
	userRepo.Create(ctx, &models.User{Email: "b@example.com", Role: models.RoleUser})
	userRepo.Create(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	userSvc := users.NewService(userRepo, config.AdminConfig{})

	appointmentSvc := appointments.NewService(appointments.NewMemoryRepository(), nil, appointments.NewBroker())
	a, err := appointmentSvc.Book(ctx, appointments.BookInput{UserID: "u-1", UserEmail: "a@example.com", ServiceType: "Consultation", Date: "2026-09-14", Time: "10:00"})
	require.NoError(t, err)
	require.NoError(t, appointmentSvc.UpdateStatus(ctx, a.ID, appointments.StatusConfirmed))
	_, err = appointmentSvc.Book(ctx, appointments.BookInput{UserID: "u-2", UserEmail: "b@example.com", ServiceType: "Assessment", Date: "2026-09-15", Time: "11:00"})
	require.NoError(t, err)

	practitionerSvc := practitioners.NewService(practitioners.NewMemoryRepository(), newStubStore())
	_, err = practitionerSvc.Create(ctx, &practitioners.Practitioner{Name: "Ada Lindqvist"}, nil)
	require.NoError(t, err)

	blogSvc := blog.NewService(blog.NewMemoryRepository(), newStubStore())
	_, err = blogSvc.Create(ctx, &blog.Post{Title: "Live", Content: "a", Published: true}, nil)
	require.NoError(t, err)
	_, err = blogSvc.Create(ctx, &blog.Post{Title: "Draft", Content: "a"}, nil)
	require.NoError(t, err)

	h := NewAdminHandler(userSvc, appointmentSvc, practitionerSvc, blogSvc)
	r := gin.New()
	h.Register(r.Group("/api/v1/admin"))

	req := httptest.NewRequest("GET", "/api/v1/admin/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Users                int64          `json:"users"`
		Appointments         int            `json:"appointments"`
		AppointmentsByStatus map[string]int `json:"appointmentsByStatus"`
		PublishedPosts       int64          `json:"publishedPosts"`
		Practitioners        int64          `json:"practitioners"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, int64(3), got.Users)
	assert.Equal(t, 2, got.Appointments)
	assert.Equal(t, 1, got.AppointmentsByStatus["pending"])
	assert.Equal(t, 1, got.AppointmentsByStatus["confirmed"])
	assert.Equal(t, int64(1), got.PublishedPosts)
	assert.Equal(t, int64(1), got.Practitioners)
}

func TestPatientsExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	userRepo.Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser})
	userRepo.Create(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	userSvc := users.NewService(userRepo, config.AdminConfig{})

	h := NewAdminHandler(userSvc, appointments.NewService(appointments.NewMemoryRepository(), nil, appointments.NewBroker()),
		practitioners.NewService(practitioners.NewMemoryRepository(), newStubStore()),
		blog.NewService(blog.NewMemoryRepository(), newStubStore()))
	r := gin.New()
	h.Register(r.Group("/api/v1/admin"))

	req := httptest.NewRequest("GET", "/api/v1/admin/patients", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list []*models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "a@example.com", list[0].Email)
}
