package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bondiano/social-network-higload/auth"
	"github.com/bondiano/social-network-higload/auth/authctx"
	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/server"
	"github.com/bondiano/social-network-higload/users"
)

// Handler bundles the services the endpoints depend on.
type Handler struct {
	users  *users.Service
	tokens *auth.TokenService
	log    *logger.Logger
}

// NewHandler creates the endpoint handler set.
func NewHandler(userSvc *users.Service, tokens *auth.TokenService, log *logger.Logger) *Handler {
	return &Handler{
		users:  userSvc,
		tokens: tokens,
		log:    log.WithComponent("api"),
	}
}

// Register handles POST /api/user/register.
func (h *Handler) Register(c *gin.Context) {
	var form SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	user, err := form.ToUser()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	user, pair, err := h.users.SignUp(c.Request.Context(), user, form.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondCreated(c, AuthResponse{
		User:   user,
		Tokens: TokenPairDTO{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

// Login handles POST /api/login.
func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	user, pair, err := h.users.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, AuthResponse{
		User:   user,
		Tokens: TokenPairDTO{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

// Logout handles POST /api/logout. Both tokens of the presented session are
// blacklisted; a failure on either one fails the call.
func (h *Handler) Logout(c *gin.Context) {
	identity, err := authctx.GetOrError[auth.Identity[*users.User]](c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.NoToken("user"))
		return
	}

	ctx := c.Request.Context()
	err = errors.Join(
		h.tokens.Invalidate(ctx, identity.Tokens.AccessToken),
		h.tokens.Invalidate(ctx, identity.Tokens.RefreshToken),
	)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("session terminated", map[string]interface{}{
		logger.FieldUserID: identity.User.ID,
	})
	server.RespondOK(c, gin.H{"loggedOut": true})
}
