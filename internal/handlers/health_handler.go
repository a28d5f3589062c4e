package handlers

import (
	"net/http"

	"marketsafe_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

// Health handles GET /health. It pings the database so the check reflects
// the whole stack, not only the HTTP listener.
func (h *HealthHandler) Health(c *gin.Context) {
	db := h.GetDB(c)

	sqlDB, err := db.DB()
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrDatabaseUnavailable(err))
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		apperrors.HandleError(c, apperrors.ErrDatabaseUnavailable(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
