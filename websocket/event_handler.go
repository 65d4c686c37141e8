package websocket

import (
	"encoding/json"
	"log"
	"time"
	"unicode/utf8"

	"github.com/business-nexus/backend/models"
)

// SendMessagePayload is the client payload for a real-time chat message.
type SendMessagePayload struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// TypingPayload is the client payload for a typing indicator.
type TypingPayload struct {
	ReceiverID string `json:"receiver_id"`
	IsTyping   bool   `json:"is_typing"`
}

// handleFrame dispatches one inbound event from a connected client.
// Failures are logged and dropped; they never terminate the connection.
func (h *Hub) handleFrame(client *Client, frame Frame) {
	switch frame.Type {
	case EventJoinChat:
		if otherID, ok := frame.Payload.(string); ok && otherID != "" {
			client.joinRoom(RoomID(client.userID, otherID))
		}
	case EventLeaveChat:
		if otherID, ok := frame.Payload.(string); ok && otherID != "" {
			client.leaveRoom(RoomID(client.userID, otherID))
		}
	case EventSendMessage:
		var payload SendMessagePayload
		if err := decodePayload(frame.Payload, &payload); err != nil {
			log.Printf("error decoding sendMessage payload from user %s: %v", client.userID, err)
			return
		}
		h.relayMessage(client, payload)
	case EventTyping:
		var payload TypingPayload
		if err := decodePayload(frame.Payload, &payload); err != nil {
			log.Printf("error decoding typing payload from user %s: %v", client.userID, err)
			return
		}
		h.relayTyping(client, payload)
	case EventGetOnlineStatus:
		var userIDs []string
		if err := decodePayload(frame.Payload, &userIDs); err != nil {
			log.Printf("error decoding getOnlineStatus payload from user %s: %v", client.userID, err)
			return
		}
		h.answerOnlineStatus(client, userIDs)
	default:
		log.Printf("unknown event type %q from user %s", frame.Type, client.userID)
	}
}

// relayMessage fans a chat message out to the two-party room and drops a
// truncated notification on the receiver's private channel. The message is
// not persisted here; the REST path owns durable storage. Out-of-bound
// content is dropped without any fan-out.
func (h *Hub) relayMessage(sender *Client, payload SendMessagePayload) {
	if payload.ReceiverID == "" || payload.Content == "" {
		return
	}
	if utf8.RuneCountInString(payload.Content) > models.MaxMessageLength {
		return
	}

	roomID := RoomID(sender.userID, payload.ReceiverID)
	now := time.Now()

	data, err := marshalFrame(EventNewMessage, map[string]interface{}{
		"sender": map[string]interface{}{
			"id":     sender.userID,
			"name":   sender.name,
			"avatar": sender.avatar,
		},
		"receiver":   map[string]interface{}{"id": payload.ReceiverID},
		"content":    payload.Content,
		"created_at": now,
		"read":       false,
	})
	if err != nil {
		log.Printf("error marshaling newMessage event: %v", err)
		return
	}
	h.broadcastToRoom(roomID, data, sender)

	// The receiver gets a preview on their private channel even when they
	// are online but not viewing this chat.
	h.NotifyUser(payload.ReceiverID, EventMessageNotification, map[string]interface{}{
		"sender_id":   sender.userID,
		"sender_name": sender.name,
		"content":     previewContent(payload.Content),
		"timestamp":   now,
	})
}

// relayTyping forwards a typing indicator to the two-party room only.
func (h *Hub) relayTyping(sender *Client, payload TypingPayload) {
	if payload.ReceiverID == "" {
		return
	}

	data, err := marshalFrame(EventUserTyping, map[string]interface{}{
		"user_id":   sender.userID,
		"user_name": sender.name,
		"is_typing": payload.IsTyping,
	})
	if err != nil {
		log.Printf("error marshaling userTyping event: %v", err)
		return
	}
	h.broadcastToRoom(RoomID(sender.userID, payload.ReceiverID), data, sender)
}

// answerOnlineStatus replies to the requesting client with a presence
// snapshot for the given user IDs.
func (h *Hub) answerOnlineStatus(client *Client, userIDs []string) {
	data, err := marshalFrame(EventOnlineStatus, h.OnlineStatus(userIDs))
	if err != nil {
		log.Printf("error marshaling onlineStatus event: %v", err)
		return
	}
	client.enqueue(data)
}

// previewContent caps content for notification payloads, marking truncation
// with an ellipsis.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= NotificationPreviewLength {
		return content
	}
	return string(runes[:NotificationPreviewLength]) + "..."
}

// decodePayload round-trips an already decoded payload into a typed struct.
func decodePayload(payload interface{}, v interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
