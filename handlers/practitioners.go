package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/practitioners"
	"github.com/harborlight/portal/pkg/logger"
)

// PractitionerHandler serves the public staff directory and the admin CRUD
// screens behind it.
type PractitionerHandler struct {
	svc *practitioners.Service
}

func NewPractitionerHandler(svc *practitioners.Service) *PractitionerHandler {
	return &PractitionerHandler{svc: svc}
}

func (h *PractitionerHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/practitioners", h.List)
	rg.GET("/practitioners/:id", h.Get)
}

func (h *PractitionerHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/practitioners", h.Create)
	rg.PUT("/practitioners/:id", h.Update)
	rg.DELETE("/practitioners/:id", h.Delete)
}

func (h *PractitionerHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("practitioner list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load practitioners"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PractitionerHandler) Get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, practitioners.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "practitioner not found"})
		return
	}
	if err != nil {
		logger.Errorf("practitioner lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load practitioner"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create accepts a multipart form: a "data" part with the practitioner JSON
// and an optional "photo" part.
func (h *PractitionerHandler) Create(c *gin.Context) {
	var p practitioners.Practitioner
	if err := json.Unmarshal([]byte(c.PostForm("data")), &p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid practitioner payload"})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	photo, err := formUpload(c, "photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo"})
		return
	}
	if photo != nil {
		defer photo.close()
	}
	created, err := h.svc.Create(c.Request.Context(), &p, photoUpload(photo))
	if err != nil {
		logger.Errorf("practitioner create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create practitioner"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update merges the submitted fields; untouched fields keep their value.
func (h *PractitionerHandler) Update(c *gin.Context) {
	fields := map[string]any{}
	if raw := c.PostForm("data"); raw != "" {
		var payload struct {
			Name         *string                          `json:"name"`
			Title        *string                          `json:"title"`
			Bio          *string                          `json:"bio"`
			Summary      *string                          `json:"summary"`
			Credentials  *string                          `json:"credentials"`
			Status       *string                          `json:"status"`
			Specialties  []string                         `json:"specialties"`
			Availability []practitioners.AvailabilitySlot `json:"availability"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid practitioner payload"})
			return
		}
		setIf(fields, "name", payload.Name)
		setIf(fields, "title", payload.Title)
		setIf(fields, "bio", payload.Bio)
		setIf(fields, "summary", payload.Summary)
		setIf(fields, "credentials", payload.Credentials)
		setIf(fields, "status", payload.Status)
		if payload.Specialties != nil {
			fields["specialties"] = payload.Specialties
		}
		if payload.Availability != nil {
			fields["availability"] = payload.Availability
		}
	}
	photo, err := formUpload(c, "photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo"})
		return
	}
	if photo != nil {
		defer photo.close()
	}
	err = h.svc.Update(c.Request.Context(), c.Param("id"), fields, photoUpload(photo))
	if errors.Is(err, practitioners.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "practitioner not found"})
		return
	}
	if err != nil {
		logger.Errorf("practitioner update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update practitioner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "practitioner updated"})
}

func (h *PractitionerHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, practitioners.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "practitioner not found"})
		return
	}
	if err != nil {
		logger.Errorf("practitioner delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete practitioner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "practitioner deleted"})
}

func setIf(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func photoUpload(u *upload) *practitioners.FileUpload {
	if u == nil {
		return nil
	}
	return &practitioners.FileUpload{Name: u.name, Reader: u.f, Size: u.size, ContentType: u.contentType}
}
