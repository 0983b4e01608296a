// Package router assembles the HTTP routes for the broker backend.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "broker_backend/internal/feature/auth/transport/handler"
	logolookuphandler "broker_backend/internal/feature/logolookup/transport/handler"
	stockhandler "broker_backend/internal/feature/stocks/transport/handler"
	"broker_backend/internal/platform/http/handler"
	jwtmw "broker_backend/internal/platform/jwt"
)

// NewRouter wires every feature handler onto a gin engine. logoLookup
// may be nil when the image pipeline is not configured; its route is
// then not registered.
func NewRouter(auth *authhandler.AuthHandler, stocks *stockhandler.StockHandler,
	logoLookup *logolookuphandler.LogoLookupHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)
	r.POST("/refresh", auth.Refresh)
	r.POST("/logout", auth.Logout)

	r.GET("/stocks", stocks.List)
	r.POST("/stocks", stocks.Create)
	r.POST("/stocks/validate", stocks.Validate)
	r.GET("/stocks/:id", stocks.Get)
	r.PUT("/stocks/:id", stocks.Update)
	r.DELETE("/stocks/:id", stocks.Delete)

	if logoLookup != nil {
		protected := r.Group("/")
		protected.Use(jwtmw.AuthRequired())
		{
			protected.POST("/stocks/identify", logoLookup.Identify)
		}
	}

	return r
}
