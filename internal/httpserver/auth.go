package httpserver

import (
	"net/http"

	authsvc "gamestore/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

func signupHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in authsvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		user, err := auth.Signup(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

func loginHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		user, access, refresh, err := auth.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user": user,
			"token": tokenResponse{
				AccessToken:  access,
				RefreshToken: refresh,
				TokenType:    "Bearer",
				ExpiresIn:    auth.AccessTTLSeconds(),
			},
		})
	}
}

func refreshHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		access, err := auth.Refresh(c.Request.Context(), in.RefreshToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tokenResponse{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   auth.AccessTTLSeconds(),
		})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
	}
}

func grantRolesHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Roles []string `json:"roles"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if err := auth.GrantRoles(c.Request.Context(), c.Param("id"), in.Roles); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "roles updated"})
	}
}
