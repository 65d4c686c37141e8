package controllers

import (
	"net/http"
	"time"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/business-nexus/backend/websocket"
	"github.com/gin-gonic/gin"
)

type SendMessageInput struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=1000"`
}

// Conversation is one entry of the conversation list: the counterpart,
// the latest exchanged message and how many of their messages are unread.
type Conversation struct {
	OtherUser   models.UserSummary `json:"other_user"`
	LastMessage models.Message     `json:"last_message"`
	UnreadCount int64              `json:"unread_count"`
}

// SendMessage godoc
// @Summary Send a direct message
// @Description Persists the message, then pushes a best-effort realtime notification
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body SendMessageInput true "Message"
// @Success 201 {object} map[string]interface{} "Message sent"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 404 {object} map[string]interface{} "Receiver not found"
// @Router /api/chat/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var receiver models.User
	if err := database.DB.Where("id = ? AND is_active = ?", input.ReceiverID, true).
		First(&receiver).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Receiver not found")
		return
	}

	message := models.Message{
		SenderID:    userID,
		ReceiverID:  input.ReceiverID,
		Content:     input.Content,
		MessageType: "text",
	}

	if err := database.DB.Create(&message).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	database.DB.Preload("Sender").Preload("Receiver").First(&message, "id = ?", message.ID)

	// Durable write first, realtime push second. The push goes to the
	// receiver's private channel only; room fan-out belongs to the
	// websocket send path.
	h.Hub.NotifyUser(input.ReceiverID, websocket.EventNewMessage, message)

	utils.Success(c, http.StatusCreated, "Message sent successfully", message)
}

// GetMessages godoc
// @Summary Get the conversation with another user
// @Description Returns one page of messages oldest first and marks incoming messages read
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Other user ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Messages"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/chat/messages/{userId} [get]
func (h *Handler) GetMessages(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	otherID := c.Param("userId")
	page, limit := pageParams(c, 50)

	var other models.User
	if err := database.DB.Where("id = ? AND is_active = ?", otherID, true).
		First(&other).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	pair := database.DB.Model(&models.Message{}).Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID)

	var total int64
	if err := pair.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	var messages []models.Message
	if err := database.DB.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&messages).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	// Viewing the conversation marks the counterpart's messages read.
	database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", otherID, userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": time.Now()})

	// Reverse to show oldest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	utils.SuccessPage(c, http.StatusOK, messages, utils.NewPagination(page, limit, total))
}

// GetConversations godoc
// @Summary List conversations
// @Description One entry per counterpart with the last message and unread count
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Conversations"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/chat/conversations [get]
func (h *Handler) GetConversations(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var messages []models.Message
	if err := database.DB.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}

	// Messages arrive newest first, so the first message seen for a
	// counterpart is the latest one and fixes the conversation order.
	order := make([]string, 0)
	latest := make(map[string]models.Message)
	unread := make(map[string]int64)
	for _, m := range messages {
		otherID := m.SenderID
		if otherID == userID {
			otherID = m.ReceiverID
		}
		if _, seen := latest[otherID]; !seen {
			latest[otherID] = m
			order = append(order, otherID)
		}
		if m.ReceiverID == userID && !m.Read {
			unread[otherID]++
		}
	}

	var others []models.User
	if len(order) > 0 {
		if err := database.DB.Where("id IN ?", order).Find(&others).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch conversations")
			return
		}
	}
	byID := make(map[string]models.User, len(others))
	for _, u := range others {
		byID[u.ID] = u
	}

	conversations := make([]Conversation, 0, len(order))
	for _, otherID := range order {
		other, ok := byID[otherID]
		if !ok {
			continue
		}
		conversations = append(conversations, Conversation{
			OtherUser:   other.Summary(),
			LastMessage: latest[otherID],
			UnreadCount: unread[otherID],
		})
	}

	utils.Success(c, http.StatusOK, "", conversations)
}

// MarkMessagesRead godoc
// @Summary Mark messages from a user as read
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Sender user ID"
// @Success 200 {object} map[string]interface{} "Messages marked as read"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/chat/messages/{userId}/read [patch]
func (h *Handler) MarkMessagesRead(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	result := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", c.Param("userId"), userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": time.Now()})
	if result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to mark messages as read")
		return
	}

	utils.Success(c, http.StatusOK, "Messages marked as read", gin.H{
		"modified_count": result.RowsAffected,
	})
}

// GetUnreadCount godoc
// @Summary Get the total unread message count
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Unread count"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/chat/unread-count [get]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var unreadCount int64
	if err := database.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch unread count")
		return
	}

	utils.Success(c, http.StatusOK, "", gin.H{"unread_count": unreadCount})
}
