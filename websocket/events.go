package websocket

// Frame is the wire envelope for every websocket event in either direction.
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client-to-server event types.
const (
	EventJoinChat        = "joinChat"
	EventLeaveChat       = "leaveChat"
	EventSendMessage     = "sendMessage"
	EventTyping          = "typing"
	EventGetOnlineStatus = "getOnlineStatus"
)

// Server-to-client event types.
const (
	EventNewMessage          = "newMessage"
	EventMessageNotification = "messageNotification"
	EventUserTyping          = "userTyping"
	EventOnlineStatus        = "onlineStatus"
	EventUserOnline          = "userOnline"
	EventUserOffline         = "userOffline"
	EventNewRequest          = "newRequest"
	EventRequestUpdate       = "requestUpdate"
)

// NotificationPreviewLength caps the content preview carried by
// messageNotification events.
const NotificationPreviewLength = 50
