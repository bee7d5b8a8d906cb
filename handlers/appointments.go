package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/appointments"
	"github.com/harborlight/portal/pkg/logger"
	"github.com/harborlight/portal/pkg/metrics"
	"github.com/harborlight/portal/pkg/middleware"
)

// AppointmentHandler exposes booking for patients and lifecycle management
// for admins.
type AppointmentHandler struct {
	svc *appointments.Service
}

func NewAppointmentHandler(svc *appointments.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// RegisterAuthenticated registers the patient-facing routes.
func (h *AppointmentHandler) RegisterAuthenticated(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.Book)
	rg.GET("/appointments", h.ListMine)
	rg.GET("/appointments/stream", h.StreamMine)
}

// RegisterAdmin registers the admin lifecycle routes.
func (h *AppointmentHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/appointments", h.ListAll)
	rg.GET("/appointments/stream", h.StreamAll)
	rg.PATCH("/appointments/:id/status", h.UpdateStatus)
	rg.PATCH("/appointments/:id/assignment", h.UpdateAssignment)
}

// Book creates an appointment from the booking form. The optional
// "document" part is uploaded before the record is written. Status is
// always pending regardless of the submitted form.
func (h *AppointmentHandler) Book(c *gin.Context) {
	serviceType := c.PostForm("serviceType")
	date := c.PostForm("date")
	timeSlot := c.PostForm("time")
	if serviceType == "" || date == "" || timeSlot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceType, date and time are required"})
		return
	}
	in := appointments.BookInput{
		UserID:      middleware.UserID(c),
		UserEmail:   middleware.Email(c),
		ServiceType: serviceType,
		Date:        date,
		Time:        timeSlot,
		Notes:       c.PostForm("notes"),
	}
	if fh, err := c.FormFile("document"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable document"})
			return
		}
		defer f.Close()
		in.File = &appointments.FileUpload{
			Name:        fh.Filename,
			Reader:      f,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}
	a, err := h.svc.Book(c.Request.Context(), in)
	if err != nil {
		logger.Errorf("booking failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book appointment"})
		return
	}
	metrics.AppointmentsCreated.WithLabelValues(a.ServiceType).Inc()
	c.JSON(http.StatusCreated, a)
}

// ListMine returns the caller's appointments, newest date first.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	list, err := h.svc.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logger.Errorf("appointment list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAll returns every appointment for the admin dashboard.
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("appointment list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// StreamMine pushes the caller's appointment list as server-sent events,
// one full snapshot per change.
func (h *AppointmentHandler) StreamMine(c *gin.Context) {
	h.stream(c, middleware.UserID(c))
}

// StreamAll pushes the unscoped list to admin dashboards.
func (h *AppointmentHandler) StreamAll(c *gin.Context) {
	h.stream(c, "")
}

func (h *AppointmentHandler) stream(c *gin.Context, userID string) {
	sub, err := h.svc.Watch(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("appointment watch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open stream"})
		return
	}
	defer h.svc.Unwatch(sub)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("appointments", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// UpdateStatus applies one lifecycle transition.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, appointments.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
	case errors.Is(err, appointments.ErrBadTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, appointments.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case err != nil:
		logger.Errorf("status update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
	default:
		metrics.AppointmentStatusUpdates.WithLabelValues(req.Status).Inc()
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}

// UpdateAssignment overwrites the free-text staff assignment and notes.
func (h *AppointmentHandler) UpdateAssignment(c *gin.Context) {
	var req struct {
		AssignedMember string `json:"assignedMember"`
		Notes          string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.svc.Assign(c.Request.Context(), c.Param("id"), req.AssignedMember, req.Notes)
	switch {
	case errors.Is(err, appointments.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case err != nil:
		logger.Errorf("assignment update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update assignment"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "assignment updated"})
	}
}
