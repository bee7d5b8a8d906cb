package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/appointments"
	"github.com/harborlight/portal/internal/blog"
	"github.com/harborlight/portal/internal/practitioners"
	"github.com/harborlight/portal/internal/users"
	"github.com/harborlight/portal/pkg/logger"
)

// AdminHandler serves the dashboard numbers and the patient directory.
type AdminHandler struct {
	usersSvc         *users.Service
	appointmentsSvc  *appointments.Service
	practitionersSvc *practitioners.Service
	blogSvc          *blog.Service
}

func NewAdminHandler(u *users.Service, a *appointments.Service, p *practitioners.Service, b *blog.Service) *AdminHandler {
	return &AdminHandler{usersSvc: u, appointmentsSvc: a, practitionersSvc: p, blogSvc: b}
}

func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/patients", h.Patients)
	rg.GET("/analytics", h.Analytics)
}

// Patients lists every non-admin account, newest first.
func (h *AdminHandler) Patients(c *gin.Context) {
	list, err := h.usersSvc.Patients(c.Request.Context())
	if err != nil {
		logger.Errorf("patient list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load patients"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Analytics returns the dashboard counters: total users, appointments
// broken down by status, published posts and practitioners.
func (h *AdminHandler) Analytics(c *gin.Context) {
	ctx := c.Request.Context()

	userCount, err := h.usersSvc.Count(ctx)
	if err != nil {
		logger.Errorf("analytics user count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	appts, err := h.appointmentsSvc.ListAll(ctx)
	if err != nil {
		logger.Errorf("analytics appointment load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	byStatus := map[string]int{
		appointments.StatusPending:   0,
		appointments.StatusConfirmed: 0,
		appointments.StatusCompleted: 0,
		appointments.StatusCancelled: 0,
	}
	for _, a := range appts {
		byStatus[a.Status]++
	}
	postCount, err := h.blogSvc.CountPublished(ctx)
	if err != nil {
		logger.Errorf("analytics post count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	practitionerCount, err := h.practitionersSvc.Count(ctx)
	if err != nil {
		logger.Errorf("analytics practitioner count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":                userCount,
		"appointments":         len(appts),
		"appointmentsByStatus": byStatus,
		"publishedPosts":       postCount,
		"practitioners":        practitionerCount,
	})
}
