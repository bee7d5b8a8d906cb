package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
	"github.com/harborlight/portal/internal/tokens"
	"github.com/harborlight/portal/pkg/middleware"
)

// PageHandler wires the route guard over the server-routed pages. The page
// bodies are placeholders; the guard semantics are what matters: anonymous
// visitors land on the matching sign-in page, signed-in non-admins reaching
// an admin page are silently sent to the portal.
type PageHandler struct {
	cfg *config.Config
}

func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

func (h *PageHandler) Register(r *gin.Engine) {
	r.GET(middleware.LoginPath, h.page("login"))
	r.GET(middleware.AdminLoginPath, h.page("admin login"))
	r.GET("/signup", h.page("signup"))

	guarded := middleware.PageGuard(h.resolve, false)
	r.GET(middleware.PortalPath, guarded, h.page("portal"))
	r.GET("/book", guarded, h.page("booking"))

	adminGuarded := middleware.PageGuard(h.resolve, true)
	admin := r.Group("/admin", adminGuarded)
	admin.GET("", h.page("admin dashboard"))
	admin.GET("/analytics", h.page("admin analytics"))
	admin.GET("/patients", h.page("admin patients"))
	admin.GET("/practitioners", h.page("admin practitioners"))
	admin.GET("/services", h.page("admin services"))
	admin.GET("/blog", h.page("admin blog"))

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})
}

// resolve settles the session from the access token carried in either the
// Authorization header or the accessToken cookie.
func (h *PageHandler) resolve(c *gin.Context) middleware.SessionState {
	raw := ""
	if auth := c.GetHeader("Authorization"); auth != "" {
		fmt.Sscanf(auth, "Bearer %s", &raw)
	}
	if raw == "" {
		if cookie, err := c.Cookie("accessToken"); err == nil {
			raw = cookie
		}
	}
	if raw == "" {
		return middleware.SessionState{}
	}
	claims, err := tokens.ParseAccessToken(h.cfg.JWT.Secret, raw)
	if err != nil {
		return middleware.SessionState{}
	}
	role, _ := claims["role"].(string)
	return middleware.SessionState{LoggedIn: true, IsAdmin: role == models.RoleAdmin}
}

func (h *PageHandler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "%s\n", name)
	}
}
