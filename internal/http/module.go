// Package http holds the server plumbing shared by the domain modules:
// the Module registration contract and the router wiring around it.
package http

import (
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is implemented by each bounded context so the router can mount
// its routes without knowing about individual endpoints.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's routes using the shared groups
	// and middleware carried by the RouterContext.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles what modules need at registration time, so
// RegisterRoutes keeps a single-parameter signature.
type RouterContext struct {
	// Engine is the root Gin engine, for modules needing engine-level hooks.
	Engine *gin.Engine
	// V1 is the public /api/v1 group.
	V1 *gin.RouterGroup
	// Protected is the JWT-guarded group under /api/v1.
	Protected *gin.RouterGroup
	// Config scopes JWT settings for modules building their own middleware.
	Config config.JWTConfig
	// AuthMiddleware authenticates requests on protected routes.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter is the tighter per-IP limiter for credential routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
