package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/business-nexus/backend/websocket"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateRequestInput struct {
	EntrepreneurID string `json:"entrepreneur_id" binding:"required"`
	Message        string `json:"message" binding:"required,min=10,max=1000"`
}

type RespondRequestInput struct {
	Status          models.RequestStatus `json:"status" binding:"required"`
	ResponseMessage string               `json:"response_message" binding:"max=1000"`
}

// CreateRequest godoc
// @Summary Send a collaboration request
// @Description Creates a pending request from the authenticated investor to an entrepreneur
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestInput true "Request details"
// @Success 201 {object} map[string]interface{} "Request created"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 403 {object} map[string]interface{} "Investors only"
// @Failure 404 {object} map[string]interface{} "Entrepreneur not found"
// @Failure 409 {object} map[string]interface{} "Request already exists for this pair"
// @Router /api/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var entrepreneur models.User
	if err := database.DB.Where("id = ? AND role = ? AND is_active = ?",
		input.EntrepreneurID, models.RoleEntrepreneur, true).First(&entrepreneur).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Entrepreneur not found")
		return
	}

	// One request per investor/entrepreneur pair, whatever its status.
	var existing models.Request
	if err := database.DB.Where("investor_id = ? AND entrepreneur_id = ?",
		user.ID, input.EntrepreneurID).First(&existing).Error; err == nil {
		utils.Error(c, http.StatusConflict, "Request already sent to this entrepreneur")
		return
	}

	request := models.Request{
		InvestorID:     user.ID,
		EntrepreneurID: input.EntrepreneurID,
		Status:         models.RequestPending,
		Message:        input.Message,
	}

	if err := database.DB.Create(&request).Error; err != nil {
		// Concurrent creates for the same pair are decided by the unique
		// index; the loser lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, http.StatusConflict, "Request already sent to this entrepreneur")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to create request")
		return
	}

	database.DB.Preload("Investor").Preload("Entrepreneur").First(&request, "id = ?", request.ID)

	h.Hub.NotifyUser(input.EntrepreneurID, websocket.EventNewRequest, gin.H{
		"request": request,
		"message": "New collaboration request from " + user.Name,
	})

	utils.Success(c, http.StatusCreated, "Collaboration request sent successfully", request)
}

// GetRequests godoc
// @Summary List the caller's collaboration requests
// @Description Returns requests where the caller is a party, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, accepted, rejected)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "List of requests"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/requests [get]
func (h *Handler) GetRequests(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := pageParams(c, 10)

	query := database.DB.Model(&models.Request{})
	if user.Role == models.RoleInvestor {
		query = query.Where("investor_id = ?", user.ID)
	} else {
		query = query.Where("entrepreneur_id = ?", user.ID)
	}

	if status := models.RequestStatus(c.Query("status")); status != "" && status.Valid() {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}

	var requests []models.Request
	if err := query.Preload("Investor").Preload("Entrepreneur").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&requests).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}

	utils.SuccessPage(c, http.StatusOK, requests, utils.NewPagination(page, limit, total))
}

// GetRequest godoc
// @Summary Get a collaboration request by ID
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Request"
// @Failure 403 {object} map[string]interface{} "Not a party to this request"
// @Failure 404 {object} map[string]interface{} "Request not found"
// @Router /api/requests/{id} [get]
func (h *Handler) GetRequest(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var request models.Request
	if err := database.DB.Preload("Investor").Preload("Entrepreneur").
		First(&request, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Request not found")
		return
	}

	if request.InvestorID != userID && request.EntrepreneurID != userID {
		utils.Error(c, http.StatusForbidden, "Access denied")
		return
	}

	utils.Success(c, http.StatusOK, "", request)
}

// RespondToRequest godoc
// @Summary Accept or reject a pending request
// @Description Only the named entrepreneur may respond, and only while pending
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param response body RespondRequestInput true "Response"
// @Success 200 {object} map[string]interface{} "Request updated"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Request not found or already processed"
// @Router /api/requests/{id} [patch]
func (h *Handler) RespondToRequest(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var input RespondRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if !input.Status.Terminal() {
		utils.Error(c, http.StatusBadRequest, "Status must be either accepted or rejected")
		return
	}

	// Missing, already processed and not-owned records all collapse into
	// the same not-found answer so callers cannot probe other pairs.
	var request models.Request
	if err := database.DB.Where("id = ? AND entrepreneur_id = ? AND status = ?",
		c.Param("id"), user.ID, models.RequestPending).First(&request).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Request not found or already processed")
		return
	}

	now := time.Now()
	request.Status = input.Status
	request.ResponseMessage = input.ResponseMessage
	request.RespondedAt = &now

	if err := database.DB.Save(&request).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update request")
		return
	}

	database.DB.Preload("Investor").Preload("Entrepreneur").First(&request, "id = ?", request.ID)

	h.Hub.NotifyUser(request.InvestorID, websocket.EventRequestUpdate, gin.H{
		"request": request,
		"message": "Your request was " + string(input.Status) + " by " + user.Name,
	})

	utils.Success(c, http.StatusOK, "Request "+string(input.Status)+" successfully", request)
}

// DeleteRequest godoc
// @Summary Delete a pending request
// @Description Only the originating investor may delete, and only while pending
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Request deleted"
// @Failure 404 {object} map[string]interface{} "Request not found or cannot be deleted"
// @Router /api/requests/{id} [delete]
func (h *Handler) DeleteRequest(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var request models.Request
	if err := database.DB.Where("id = ? AND investor_id = ? AND status = ?",
		c.Param("id"), userID, models.RequestPending).First(&request).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Request not found or cannot be deleted")
		return
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete request")
		return
	}

	utils.Success(c, http.StatusOK, "Request deleted successfully", nil)
}
