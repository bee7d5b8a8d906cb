package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/catalog"
	"github.com/harborlight/portal/pkg/logger"
)

// ServiceHandler serves the public services page and the admin catalog CRUD.
type ServiceHandler struct {
	repo catalog.Repository
}

func NewServiceHandler(repo catalog.Repository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

func (h *ServiceHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
	rg.GET("/services/:id", h.Get)
}

func (h *ServiceHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/services", h.Create)
	rg.PUT("/services/:id", h.Update)
	rg.DELETE("/services/:id", h.Delete)
}

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("service list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load services"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err != nil {
		logger.Errorf("service lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var s catalog.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if !catalog.ValidCategory(s.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	created, err := h.repo.Create(c.Request.Context(), &s)
	if err != nil {
		logger.Errorf("service create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var payload struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Duration    *string  `json:"duration"`
		Price       *string  `json:"price"`
		Category    *string  `json:"category"`
		Features    []string `json:"features"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Category != nil && !catalog.ValidCategory(*payload.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	fields := map[string]any{}
	setIf(fields, "title", payload.Title)
	setIf(fields, "description", payload.Description)
	setIf(fields, "duration", payload.Duration)
	setIf(fields, "price", payload.Price)
	setIf(fields, "category", payload.Category)
	if payload.Features != nil {
		fields["features"] = payload.Features
	}
	err := h.repo.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err != nil {
		logger.Errorf("service update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service updated"})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err != nil {
		logger.Errorf("service delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
