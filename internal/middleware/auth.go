package middleware

import (
	"net/http"
	"strings"

	"marketsafe_backend/internal/auth"
	"marketsafe_backend/internal/logger"
	"marketsafe_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const accountIDKey = "accountID"

// AuthMiddleware validates the Bearer token and stores the account id in the
// gin context for handlers downstream. The signing secret is injected by the
// caller so the middleware carries no hidden config dependency.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header missing or invalid")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		accountID, err := auth.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(accountIDKey, accountID)
		ctx := logger.WithAccountID(c.Request.Context(), accountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetAccountID extracts the authenticated account id from the context.
// Returns 0 when the request was not authenticated.
func GetAccountID(c *gin.Context) uint {
	val, exists := c.Get(accountIDKey)
	if !exists {
		return 0
	}

	id, ok := val.(uint)
	if !ok {
		return 0
	}

	return id
}

func abortUnauthorized(c *gin.Context, msg string) {
	appErr := apperrors.NewUnauthorizedError(msg)
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		ErrorMessage: appErr.Message,
		ErrorCode:    appErr.Code,
	})
}
