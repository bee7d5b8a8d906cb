package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>harborlight-portal — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the endpoints a frontend integrates first.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "harborlight-portal", "version": "v0.1.0" },
  "paths": {
    "/api/v1/auth/signup": {
      "post": {
        "summary": "Create an account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"},"firstName":{"type":"string"},"lastName":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "400": { "description": "validation failed" } }
      }
    },
    "/api/v1/auth/login": {
      "post": {
        "summary": "Sign in with email and password",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/v1/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/v1/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } }
    },
    "/api/v1/me": {
      "get": { "summary": "Get the signed-in user's profile", "responses": { "200": { "description": "user" } } }
    },
    "/api/v1/appointments": {
      "get": { "summary": "List the caller's appointments", "responses": { "200": { "description": "appointments, newest date first" } } },
      "post": { "summary": "Book an appointment (multipart, optional document part)", "responses": { "201": { "description": "created with status pending" } } }
    },
    "/api/v1/appointments/stream": {
      "get": { "summary": "Server-sent appointment snapshots for the caller", "responses": { "200": { "description": "text/event-stream" } } }
    },
    "/api/v1/practitioners": {
      "get": { "summary": "List practitioners ordered by name", "responses": { "200": { "description": "practitioners" } } }
    },
    "/api/v1/services": {
      "get": { "summary": "List services ordered by title", "responses": { "200": { "description": "services" } } }
    },
    "/api/v1/posts": {
      "get": { "summary": "List published posts, newest publication first", "responses": { "200": { "description": "posts" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
