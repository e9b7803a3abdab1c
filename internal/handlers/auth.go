package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/trait-assessment-service/internal/config"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	CounselorHeader = "X-Counselor-ID"
	userIDKey       = "user_id"
	userNameKey     = "user_name"
)

// TokenParser turns a bearer token into casdoor claims.
type TokenParser func(token string) (*casdoorsdk.Claims, error)

// AuthMiddleware resolves the calling counselor into the gin context. With
// auth disabled the X-Counselor-ID header is trusted as is.
func AuthMiddleware(cfg config.AuthConfig, logger utils.Logger) gin.HandlerFunc {
	return authMiddleware(cfg.Enabled, casdoorsdk.ParseJwtToken, logger)
}

func authMiddleware(enabled bool, parse TokenParser, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			if id := strings.TrimSpace(c.GetHeader(CounselorHeader)); id != "" {
				c.Set(userIDKey, id)
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Code:    "unauthorized",
			})
			return
		}

		claims, err := parse(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("rejected bearer token", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
				Code:    "unauthorized",
			})
			return
		}

		id := claims.User.Id
		if id == "" {
			id = claims.User.Name
		}
		c.Set(userIDKey, id)
		c.Set(userNameKey, claims.User.Name)
		c.Next()
	}
}
