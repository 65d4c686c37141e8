package controllers

import (
	"net/http"
	"strconv"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=500"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
	Location *string `json:"location" binding:"omitempty,max=100"`

	// Entrepreneur profile
	Startup       *string `json:"startup" binding:"omitempty,max=100"`
	Industry      *string `json:"industry" binding:"omitempty,max=50"`
	FundingNeeded *int64  `json:"funding_needed" binding:"omitempty,min=0"`
	PitchSummary  *string `json:"pitch_summary" binding:"omitempty,max=1000"`
	Stage         *string `json:"stage" binding:"omitempty,oneof=idea prototype mvp growth expansion"`
	TeamSize      *int    `json:"team_size" binding:"omitempty,min=1"`
	Website       *string `json:"website" binding:"omitempty,max=255"`
	Linkedin      *string `json:"linkedin" binding:"omitempty,max=255"`

	// Investor profile
	Company       *string   `json:"company" binding:"omitempty,max=100"`
	InvestmentMin *int64    `json:"investment_min" binding:"omitempty,min=0"`
	InvestmentMax *int64    `json:"investment_max" binding:"omitempty,min=0"`
	Industries    *[]string `json:"industries"`
	Portfolio     *[]string `json:"portfolio"`
	Twitter       *string   `json:"twitter" binding:"omitempty,max=255"`
}

// GetEntrepreneurs godoc
// @Summary Browse entrepreneurs
// @Description Returns active entrepreneurs with search and funding filters (investors only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match against name, startup or pitch"
// @Param industry query string false "Industry filter"
// @Param min_funding query int false "Minimum funding needed"
// @Param max_funding query int false "Maximum funding needed"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Entrepreneurs"
// @Failure 403 {object} map[string]interface{} "Investors only"
// @Router /api/users/entrepreneurs [get]
func (h *Handler) GetEntrepreneurs(c *gin.Context) {
	page, limit := pageParams(c, 10)

	query := database.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleEntrepreneur, true)

	if industry := c.Query("industry"); industry != "" {
		query = query.Where("LOWER(industry) LIKE LOWER(?)", "%"+industry+"%")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(startup) LIKE LOWER(?) OR LOWER(pitch_summary) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if minFunding, err := strconv.ParseInt(c.Query("min_funding"), 10, 64); err == nil {
		query = query.Where("funding_needed >= ?", minFunding)
	}
	if maxFunding, err := strconv.ParseInt(c.Query("max_funding"), 10, 64); err == nil {
		query = query.Where("funding_needed <= ?", maxFunding)
	}

	listUsers(c, query, page, limit)
}

// GetInvestors godoc
// @Summary Browse investors
// @Description Returns active investors with search and investment filters (entrepreneurs only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match against name, company or bio"
// @Param industry query string false "Industry filter"
// @Param min_investment query int false "Minimum investment range"
// @Param max_investment query int false "Maximum investment range"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Investors"
// @Failure 403 {object} map[string]interface{} "Entrepreneurs only"
// @Router /api/users/investors [get]
func (h *Handler) GetInvestors(c *gin.Context) {
	page, limit := pageParams(c, 10)

	query := database.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleInvestor, true)

	if industry := c.Query("industry"); industry != "" {
		// Industries is a json-serialized column; substring match is enough here.
		query = query.Where("LOWER(industries) LIKE LOWER(?)", "%"+industry+"%")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?) OR LOWER(bio) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if minInvestment, err := strconv.ParseInt(c.Query("min_investment"), 10, 64); err == nil {
		query = query.Where("investment_min >= ?", minInvestment)
	}
	if maxInvestment, err := strconv.ParseInt(c.Query("max_investment"), 10, 64); err == nil {
		query = query.Where("investment_max <= ?", maxInvestment)
	}

	listUsers(c, query, page, limit)
}

func listUsers(c *gin.Context, query *gorm.DB, page, limit int) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.SuccessPage(c, http.StatusOK, users, utils.NewPagination(page, limit, total))
}

// GetUser godoc
// @Summary Get a user profile by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{} "User"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("id = ? AND is_active = ?", c.Param("id"), true).
		First(&user).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	utils.Success(c, http.StatusOK, "", user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileInput true "Profile fields to update"
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Router /api/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setString("name", input.Name)
	setString("avatar", input.Avatar)
	setString("bio", input.Bio)
	setString("location", input.Location)

	if user.Role == models.RoleEntrepreneur {
		setString("startup", input.Startup)
		setString("industry", input.Industry)
		setString("pitch_summary", input.PitchSummary)
		setString("stage", input.Stage)
		setString("website", input.Website)
		setString("linkedin", input.Linkedin)
		if input.FundingNeeded != nil {
			updates["funding_needed"] = *input.FundingNeeded
		}
		if input.TeamSize != nil {
			updates["team_size"] = *input.TeamSize
		}
	} else {
		setString("company", input.Company)
		setString("twitter", input.Twitter)
		if input.InvestmentMin != nil {
			updates["investment_min"] = *input.InvestmentMin
		}
		if input.InvestmentMax != nil {
			updates["investment_max"] = *input.InvestmentMax
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	// Serialized slice columns go through the model so the json serializer runs.
	if user.Role == models.RoleInvestor && (input.Industries != nil || input.Portfolio != nil) {
		if input.Industries != nil {
			user.Industries = *input.Industries
		}
		if input.Portfolio != nil {
			user.Portfolio = *input.Portfolio
		}
		if err := database.DB.Model(&user).
			Select("Industries", "Portfolio").Updates(&user).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	database.DB.First(&user, "id = ?", user.ID)
	utils.Success(c, http.StatusOK, "Profile updated successfully", user)
}
