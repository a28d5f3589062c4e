package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape of every failed request:
// {"error_message": "...", "error_code": "...", "details": {...}}.
type ErrorResponse struct {
	ErrorMessage string      `json:"error_message"`
	ErrorCode    ErrorCode   `json:"error_code"`
	Details      interface{} `json:"details,omitempty"`
}

// GinErrorHandler renders AppErrors as JSON responses.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		ErrorMessage: appErr.Message,
		ErrorCode:    appErr.Code,
		Details:      appErr.Details,
	})
}

// HandleError is the helper used by handlers.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}
