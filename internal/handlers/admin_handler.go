package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/services"
)

func Login(a *services.AdminService, store sessions.Store, whitelist []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgInvalidLogin))
			return
		}

		tokenRes, err := a.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(MsgInvalidLogin))
			return
		}

		admin := &helpers.AdminClaims{Email: tokenRes.User.Email}
		if !admin.IsAllowed(whitelist) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("Access denied"))
			return
		}

		if err := helpers.SaveAdminSession(store, c.Request, c.Writer, tokenRes); err != nil {
			fail(c, http.StatusInternalServerError, err, MsgSomethingWrong)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user": gin.H{
				"id":    tokenRes.User.ID,
				"email": tokenRes.User.Email,
			},
		}, "Logged in"))
	}
}

func Logout(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := helpers.ClearAdminSession(store, c.Request, c.Writer); err != nil {
			_ = c.Error(err)
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

// Me reports the authenticated admin.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(helpers.AdminContextKey)
		admin, _ := v.(*helpers.AdminClaims)
		if !ok || admin == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"id":    admin.UserID,
			"email": admin.Email,
		}, ""))
	}
}

func SendBulkMessages(bs *services.BroadcastService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := bs.Run(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, models.ApiResponse{
				Success: false,
				Error:   MsgFetchUserData,
				Data:    result,
			})
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "Broadcast finished"))
	}
}
