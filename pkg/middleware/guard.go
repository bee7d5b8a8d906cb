package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionState is the session snapshot a page guard decides over.
type SessionState struct {
	Loading  bool
	LoggedIn bool
	IsAdmin  bool
}

// Outcome is the guard decision for a navigable page.
type Outcome int

const (
	ShowLoading Outcome = iota
	RedirectLogin
	RedirectAdminLogin
	RedirectPortal
	Allow
)

// Redirect targets for guarded pages.
const (
	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
	PortalPath     = "/portal"
)

// Decide picks the guard outcome for a page. Rules, in order: an unresolved
// session renders a loading state and never redirects; an anonymous visitor
// is sent to the sign-in page matching the route flavor; a signed-in
// non-admin reaching an admin page is silently sent to the portal.
func Decide(s SessionState, requiresAdmin bool) Outcome {
	if s.Loading {
		return ShowLoading
	}
	if !s.LoggedIn {
		if requiresAdmin {
			return RedirectAdminLogin
		}
		return RedirectLogin
	}
	if requiresAdmin && !s.IsAdmin {
		return RedirectPortal
	}
	return Allow
}

// PageGuard applies Decide to server-routed pages, issuing 302 redirects.
// resolve produces the settled session state for the request (server-side
// resolution never observes the loading branch, but the decision function
// keeps it for parity with the client contract).
func PageGuard(resolve func(*gin.Context) SessionState, requiresAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Decide(resolve(c), requiresAdmin) {
		case ShowLoading:
			c.String(http.StatusOK, "Loading...")
			c.Abort()
		case RedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		case RedirectAdminLogin:
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
		case RedirectPortal:
			c.Redirect(http.StatusFound, PortalPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}
