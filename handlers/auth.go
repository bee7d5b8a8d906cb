package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
	"github.com/harborlight/portal/internal/sessions"
	"github.com/harborlight/portal/internal/tokens"
	"github.com/harborlight/portal/internal/users"
	"github.com/harborlight/portal/pkg/httperr"
	"github.com/harborlight/portal/pkg/logger"
	"github.com/harborlight/portal/pkg/metrics"
	"github.com/harborlight/portal/pkg/middleware"
)

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// RegisterAuthenticated registers routes that need a verified token.
func (h *AuthHandler) RegisterAuthenticated(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

// Signup creates an account and signs the new user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.Message(httperr.CodeInvalidEmail)})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.Message(httperr.CodeWeakPassword)})
		return
	}
	u, err := h.usersSvc.Signup(c.Request.Context(), users.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	})
	if errors.Is(err, users.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.Message(httperr.CodeEmailInUse)})
		return
	}
	if err != nil {
		logger.Errorf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": httperr.Message("")})
		return
	}
	metrics.SignupsTotal.Inc()
	h.issueTokens(c, u)
}

// Login verifies the credential and issues tokens. The role baked into the
// access token is the stored role at this moment; it is not recomputed
// until the next login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.Message(httperr.CodeInvalidCredentials)})
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": httperr.Message(httperr.CodeInvalidCredentials)})
		return
	}
	if err != nil {
		logger.Errorf("login failed: %v", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": httperr.Message("")})
		return
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.issueTokens(c, u)
}

func (h *AuthHandler) issueTokens(c *gin.Context, u *models.User) {
	refresh, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	// Settle the role from the store before baking it into the token; a
	// lookup failure never grants admin.
	u.Role = h.usersSvc.ResolveRole(c.Request.Context(), u.ID)
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         u,
		"expiresIn":    int(h.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}

// Refresh accepts a refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Errorf("refresh validation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), sess.UserID)
	if err != nil || u == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	u.Role = h.usersSvc.ResolveRole(c.Request.Context(), u.ID)
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(h.cfg.JWT.AccessTokenTTL.Seconds())})
}

// Logout invalidates the refresh token and blacklists the presented access
// token for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		var at string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &at); n == 1 {
			if claims, err := tokens.ParseAccessToken(h.cfg.JWT.Secret, at); err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					if ttl := time.Until(exp.Time); ttl > 0 {
						if err := sessions.BlacklistAccessToken(c.Request.Context(), at, ttl); err != nil {
							logger.Warnf("failed to blacklist access token: %v", err)
						}
					}
				}
			}
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.usersSvc.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logger.Errorf("profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
