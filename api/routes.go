package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bondiano/social-network-higload/auth"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/users"
)

// RegisterRoutes mounts all endpoints on the engine. Gated routes sit behind
// the dual-token admission middleware; the user loader resolves claims
// subjects against the user store.
func RegisterRoutes(engine *gin.Engine, h *Handler, tokens *auth.TokenService, userSvc *users.Service, log *logger.Logger) {
	registerValidators()

	api := engine.Group("/api")

	api.GET("/health", h.Health)
	api.POST("/user/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/user/get/:id", h.GetUser)

	gate := auth.RequireUser(tokens, auth.UserLoader[*users.User](userSvc.ByID), log)

	gated := api.Group("")
	gated.Use(gate)
	gated.GET("/me", h.Me)
	gated.POST("/logout", h.Logout)
}
