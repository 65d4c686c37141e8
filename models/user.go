package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role is the closed set of account types in the marketplace.
type Role string

const (
	RoleInvestor     Role = "investor"
	RoleEntrepreneur Role = "entrepreneur"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleInvestor || r == RoleEntrepreneur
}

type User struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:255;not null;unique" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      Role       `gorm:"size:20;not null;index" json:"role"`
	Avatar    string     `gorm:"size:500" json:"avatar"`
	Bio       string     `gorm:"size:500" json:"bio,omitempty"`
	Location  string     `gorm:"size:100" json:"location,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	// Entrepreneur profile
	Startup       string `gorm:"size:100" json:"startup,omitempty"`
	Industry      string `gorm:"size:50;index" json:"industry,omitempty"`
	FundingNeeded int64  `json:"funding_needed,omitempty"`
	PitchSummary  string `gorm:"size:1000" json:"pitch_summary,omitempty"`
	Stage         string `gorm:"size:20" json:"stage,omitempty"`
	TeamSize      int    `json:"team_size,omitempty"`
	Website       string `gorm:"size:255" json:"website,omitempty"`
	Linkedin      string `gorm:"size:255" json:"linkedin,omitempty"`

	// Investor profile
	Company       string   `gorm:"size:100" json:"company,omitempty"`
	InvestmentMin int64    `json:"investment_min,omitempty"`
	InvestmentMax int64    `json:"investment_max,omitempty"`
	Industries    []string `gorm:"serializer:json" json:"industries,omitempty"`
	Portfolio     []string `gorm:"serializer:json" json:"portfolio,omitempty"`
	Twitter       string   `gorm:"size:255" json:"twitter,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an ID and hashes the password before the first insert
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// ValidatePassword checks if the provided password matches the stored hash
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// UserSummary is the trimmed user view embedded in request and message payloads.
type UserSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Role    Role   `json:"role"`
	Startup string `json:"startup,omitempty"`
	Company string `json:"company,omitempty"`
}

// Summary returns the trimmed view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Avatar:  u.Avatar,
		Role:    u.Role,
		Startup: u.Startup,
		Company: u.Company,
	}
}
