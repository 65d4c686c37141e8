package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength bounds message and request text content.
const MaxMessageLength = 1000

type Message struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    string     `gorm:"type:uuid;not null;index:idx_messages_pair" json:"sender_id"`
	Sender      User       `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID  string     `gorm:"type:uuid;not null;index:idx_messages_pair" json:"receiver_id"`
	Receiver    User       `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Content     string     `gorm:"size:1000;not null" json:"content"`
	Read        bool       `gorm:"default:false;index" json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	MessageType string     `gorm:"size:10;default:'text'" json:"message_type"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
