package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a collaboration request.
// A request starts pending; accepted and rejected are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestAccepted || s == RequestRejected
}

// Terminal reports whether s permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// Request is a collaboration request from an investor to an entrepreneur.
// The composite unique index enforces at most one record per pair,
// regardless of status.
type Request struct {
	ID              string        `gorm:"type:uuid;primaryKey" json:"id"`
	InvestorID      string        `gorm:"type:uuid;not null;index:idx_requests_pair,unique" json:"investor_id"`
	Investor        User          `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
	EntrepreneurID  string        `gorm:"type:uuid;not null;index:idx_requests_pair,unique" json:"entrepreneur_id"`
	Entrepreneur    User          `gorm:"foreignKey:EntrepreneurID" json:"entrepreneur,omitempty"`
	Status          RequestStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Message         string        `gorm:"size:1000;not null" json:"message"`
	ResponseMessage string        `gorm:"size:1000" json:"response_message,omitempty"`
	RespondedAt     *time.Time    `json:"responded_at,omitempty"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
