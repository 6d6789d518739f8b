package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bondiano/social-network-higload/auth/authctx"
	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
)

// RefreshAuthHeader carries the refresh token on gated requests.
const RefreshAuthHeader = "authorization-refresh-token"

// UserLoader resolves the subject of verified claims to a user record.
type UserLoader[U any] func(ctx context.Context, id uint64) (U, error)

// Identity is the request-scoped result of admission: the loaded user and
// the exact credential pair the request presented. It is created once per
// request, read-only downstream, and never persisted.
type Identity[U any] struct {
	User   U
	Tokens TokenPair
}

// RequireUser returns the request-admission middleware for authenticated
// routes. Every gated request must present BOTH headers:
//
//	Authorization: Bearer <access-token>
//	authorization-refresh-token: Bearer <refresh-token>
//
// The refresh token is extracted and attached but not verified here — it is
// required as proof of an active session pairing, not used to refresh
// anything inline. Requiring it on every gated request (rather than only on
// a refresh endpoint) is unusual, but it is the observable contract of this
// service and is preserved deliberately.
//
// Only the access token is verified; a refresh token presented in the
// Authorization header is rejected on its kind. Load failures are reported
// as an invalid token rather than "not found", so the auth layer never
// confirms whether an account exists.
func RequireUser[U any](tokens *TokenService, load UserLoader[U], log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth_gate")

	return func(c *gin.Context) {
		access := bearerToken(c.GetHeader("Authorization"))
		if access == "" {
			deny(c, log, apperrors.NoToken("user"))
			return
		}

		refresh := bearerToken(c.GetHeader(RefreshAuthHeader))
		if refresh == "" {
			deny(c, log, apperrors.NoRefreshToken("user"))
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), access)
		if err != nil {
			deny(c, log, apperrors.InvalidToken("jwt", denialReason(err)))
			return
		}

		if claims.Kind != KindAccess {
			deny(c, log, apperrors.InvalidToken("jwt", "invalid token type"))
			return
		}

		id, err := strconv.ParseUint(claims.UserID, 10, 64)
		if err != nil {
			deny(c, log, apperrors.InvalidToken("jwt", "parse token error"))
			return
		}

		user, err := load(c.Request.Context(), id)
		if err != nil {
			deny(c, log, apperrors.InvalidToken("user", "user not found"))
			return
		}

		identity := Identity[U]{
			User:   user,
			Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
		}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), identity))
		c.Next()
	}
}

// bearerToken strips the "Bearer " prefix from a header value. Returns ""
// if the header is absent or carries a different scheme.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// denialReason extracts a client-safe reason from a verification error.
func denialReason(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return "verification failed"
	}
	switch appErr.Code {
	case apperrors.ErrCodeTokenExpired:
		return "token expired"
	case apperrors.ErrCodeTokenRevoked:
		return "token revoked"
	default:
		return "signature or payload invalid"
	}
}

// deny logs the rejection at a severity proportional to suspicion and
// aborts the request with the error's status and body.
func deny(c *gin.Context, log *logger.Logger, appErr *apperrors.AppError) {
	fields := map[string]interface{}{
		"path":   c.Request.URL.Path,
		"code":   string(appErr.Code),
		"client": c.ClientIP(),
	}
	if apperrors.SeverityOf(appErr) == apperrors.SeverityError {
		log.Error("request denied", fields)
	} else {
		log.Warn("request denied", fields)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
