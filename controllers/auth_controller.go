package controllers

import (
	"net/http"
	"time"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Name     string      `json:"name" binding:"required,min=2,max=100"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"required"`
	Bio      string      `json:"bio" binding:"max=500"`
	Location string      `json:"location" binding:"max=100"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates an investor or entrepreneur account and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "Account details"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if !input.Role.Valid() {
		utils.Error(c, http.StatusBadRequest, "Role must be either investor or entrepreneur")
		return
	}

	var existingUser models.User
	if result := database.DB.Where("email = ?", input.Email).First(&existingUser); result.RowsAffected > 0 {
		utils.Error(c, http.StatusBadRequest, "User with this email already exists")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
		Bio:      input.Bio,
		Location: input.Location,
		IsActive: true,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login godoc
// @Summary Authenticate an account
// @Description Verifies credentials and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", input.Email).First(&user); result.Error != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := user.ValidatePassword(input.Password); err != nil || !user.IsActive {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	database.DB.Model(&user).Update("last_login", now)

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Me godoc
// @Summary Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Current user"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	utils.Success(c, http.StatusOK, "", user)
}
