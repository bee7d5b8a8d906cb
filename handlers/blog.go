package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/blog"
	"github.com/harborlight/portal/pkg/logger"
)

// BlogHandler serves the public blog and the admin editor behind it.
type BlogHandler struct {
	svc *blog.Service
}

func NewBlogHandler(svc *blog.Service) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", h.ListPublished)
	rg.GET("/posts/slug/:slug", h.GetBySlug)
}

func (h *BlogHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/posts", h.ListAll)
	rg.GET("/posts/:id", h.Get)
	rg.POST("/posts", h.Create)
	rg.PUT("/posts/:id", h.Update)
	rg.DELETE("/posts/:id", h.Delete)
}

func (h *BlogHandler) ListPublished(c *gin.Context) {
	list, err := h.svc.ListPublished(c.Request.Context())
	if err != nil {
		logger.Errorf("post list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, blog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		logger.Errorf("post lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BlogHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("post list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BlogHandler) Get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, blog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		logger.Errorf("post lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create accepts a multipart form: a "data" part with the post JSON and an
// optional "cover" part.
func (h *BlogHandler) Create(c *gin.Context) {
	var p blog.Post
	if err := json.Unmarshal([]byte(c.PostForm("data")), &p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post payload"})
		return
	}
	cover, err := formUpload(c, "cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable cover"})
		return
	}
	if cover != nil {
		defer cover.close()
	}
	created, err := h.svc.Create(c.Request.Context(), &p, coverUpload(cover))
	switch {
	case errors.Is(err, blog.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
	case errors.Is(err, blog.ErrNoTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
	case err != nil:
		logger.Errorf("post create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
	default:
		c.JSON(http.StatusCreated, created)
	}
}

func (h *BlogHandler) Update(c *gin.Context) {
	fields := map[string]any{}
	if raw := c.PostForm("data"); raw != "" {
		var payload struct {
			Title     *string  `json:"title"`
			Slug      *string  `json:"slug"`
			Excerpt   *string  `json:"excerpt"`
			Content   *string  `json:"content"`
			Category  *string  `json:"category"`
			Tags      []string `json:"tags"`
			Published *bool    `json:"published"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post payload"})
			return
		}
		setIf(fields, "title", payload.Title)
		setIf(fields, "slug", payload.Slug)
		setIf(fields, "excerpt", payload.Excerpt)
		setIf(fields, "content", payload.Content)
		setIf(fields, "category", payload.Category)
		if payload.Tags != nil {
			fields["tags"] = payload.Tags
		}
		if payload.Published != nil {
			fields["published"] = *payload.Published
		}
	}
	cover, err := formUpload(c, "cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable cover"})
		return
	}
	if cover != nil {
		defer cover.close()
	}
	err = h.svc.Update(c.Request.Context(), c.Param("id"), fields, coverUpload(cover))
	switch {
	case errors.Is(err, blog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, blog.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
	case errors.Is(err, blog.ErrNoTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug cannot be empty"})
	case err != nil:
		logger.Errorf("post update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "post updated"})
	}
}

func (h *BlogHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, blog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		logger.Errorf("post delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func coverUpload(u *upload) *blog.FileUpload {
	if u == nil {
		return nil
	}
	return &blog.FileUpload{Name: u.name, Reader: u.f, Size: u.size, ContentType: u.contentType}
}
