package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached with c.Error. Handlers normally write
// their own generic message; a 500 is written only when nothing was.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID, _ := c.Get("request_id")
		for _, err := range c.Errors {
			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
		}
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ApiResponse{
		Success: false,
		Message: "Unauthorized access",
		Error:   reason,
	})
}

// AuthMiddleware admits requests carrying a valid Supabase access token,
// either as a Bearer header or in the admin session. An expired session token
// is refreshed once with the stored refresh token.
func AuthMiddleware(store sessions.Store, validator *helpers.TokenValidator, adminService *services.AdminService, whitelist []string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		fromSession := false
		var refreshToken string
		if token == "" {
			token, refreshToken = helpers.AdminSessionTokens(store, c.Request)
			fromSession = true
		}
		if token == "" {
			unauthorized(c, "no session")
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			if !fromSession || refreshToken == "" {
				unauthorized(c, "invalid token")
				return
			}

			tokenRes, refreshErr := adminService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil || tokenRes == nil || tokenRes.AccessToken == "" {
				logger.Error("Token refresh failed", "error", refreshErr)
				unauthorized(c, "Token expired and refresh failed")
				return
			}
			if err := helpers.SaveAdminSession(store, c.Request, c.Writer, tokenRes); err != nil {
				logger.Error("Failed to save refreshed session", "error", err)
			}
			logger.Info("Token refreshed successfully",
				"user_id", tokenRes.User.ID,
				"expires_in", tokenRes.ExpiresIn,
			)

			claims, err = validator.Validate(tokenRes.AccessToken)
			if err != nil {
				unauthorized(c, "Refreshed token validation failed")
				return
			}
		}

		admin := helpers.NewAdminClaims(claims)
		if !admin.IsAllowed(whitelist) {
			logger.Warn("Rejected non-admin account", "email", admin.Email)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("Access denied"))
			return
		}

		c.Set(helpers.AdminContextKey, admin)
		c.Next()
	}
}
