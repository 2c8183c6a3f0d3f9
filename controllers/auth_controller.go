package controllers

import (
	"net/http"

	"nutrakids/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var input services.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, token, err := ac.Auth.RegisterParent(c.Request.Context(), input)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": token})
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "email and password required")
		return
	}
	user, token, err := ac.Auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Auth.FindUser(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// PUT /auth/me
func (ac *AuthController) UpdateMe(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := ac.Auth.UpdateProfile(c.Request.Context(), c.GetUint("userID"), input)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile updated successfully", "user": user})
}
