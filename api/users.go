package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bondiano/social-network-higload/auth"
	"github.com/bondiano/social-network-higload/auth/authctx"
	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/server"
	"github.com/bondiano/social-network-higload/users"
)

// GetUser handles GET /api/user/get/:id. The profile is public.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("id must be a positive integer"))
		return
	}

	user, err := h.users.ByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, user)
}

// Me handles GET /api/me for the authenticated session.
func (h *Handler) Me(c *gin.Context) {
	identity, err := authctx.GetOrError[auth.Identity[*users.User]](c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.NoToken("user"))
		return
	}
	server.RespondOK(c, identity.User)
}
