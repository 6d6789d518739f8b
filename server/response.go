package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and structured body are derived automatically; otherwise a generic 500 is
// sent. The error is logged at the level its severity dictates.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	fields := map[string]interface{}{
		"code":   string(appErr.Code),
		"status": appErr.HTTPStatus,
		"path":   c.Request.URL.Path,
	}
	if apperrors.SeverityOf(appErr) == apperrors.SeverityError {
		logger.Error(appErr.Message, fields)
	} else {
		logger.Warn(appErr.Message, fields)
	}

	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondCreated sends a 201 response wrapping data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}
