package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/intake"
	"github.com/harborlight/portal/pkg/logger"
	"github.com/harborlight/portal/pkg/middleware"
)

// IntakeHandler covers the contact form, patient document uploads and the
// newsletter signup. All three are public; the patient form records the
// uploader when a valid token happens to be present.
type IntakeHandler struct {
	svc *intake.Service
}

func NewIntakeHandler(svc *intake.Service) *IntakeHandler {
	return &IntakeHandler{svc: svc}
}

func (h *IntakeHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/inquiries", h.SubmitInquiry)
	rg.POST("/newsletter", h.Subscribe)
	rg.POST("/patient-forms", h.SubmitPatientForm)
}

func (h *IntakeHandler) SubmitInquiry(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inq, err := h.svc.SubmitInquiry(c.Request.Context(), &intake.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		logger.Errorf("inquiry submit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit inquiry"})
		return
	}
	c.JSON(http.StatusCreated, inq)
}

func (h *IntakeHandler) SubmitPatientForm(c *gin.Context) {
	patientName := c.PostForm("patientName")
	documentType := c.PostForm("documentType")
	if patientName == "" || documentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientName and documentType are required"})
		return
	}
	file, err := formUpload(c, "document")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
		return
	}
	defer file.close()

	var uploadedBy *string
	if uid := middleware.UserID(c); uid != "" {
		uploadedBy = &uid
	}
	pf, err := h.svc.SubmitPatientForm(c.Request.Context(), patientName, documentType, uploadedBy, &intake.FormUpload{
		Name:        file.name,
		Reader:      file.f,
		Size:        file.size,
		ContentType: file.contentType,
	})
	if err != nil {
		logger.Errorf("patient form submit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit form"})
		return
	}
	c.JSON(http.StatusCreated, pf)
}

func (h *IntakeHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Subscribe(c.Request.Context(), req.Email); err != nil {
		logger.Errorf("newsletter subscribe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}
