package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError writes err with the given HTTP status. Only AppError messages
// reach the client; anything else is logged and replaced by a generic message.
func RespondError(c *gin.Context, code int, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": code,
		}).WithError(err).Error("request failed")

		c.JSON(code, JSONResponse{
			Status:  false,
			Code:    string(KindInternal),
			Message: "internal server error",
		})
		return
	}

	if appErr.Err != nil {
		ErrorLogger.WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"kind": appErr.Kind,
		}).WithError(appErr.Err).Warn(appErr.Message)
	}

	c.JSON(code, JSONResponse{
		Status:  false,
		Code:    string(appErr.Kind),
		Message: appErr.Message,
	})
}

// RespondAppError picks the status from the error kind.
func RespondAppError(c *gin.Context, err error) {
	RespondError(c, StatusForKind(KindOf(err)), err)
}

func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable, KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden, KindAccessDenied:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
