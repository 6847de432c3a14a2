package models

import (
	"time"
)

// RefreshToken is a stored refresh token for a guardian or admin session.
// Tokens are rotated on every refresh; revoked rows are kept so a
// replayed token can be recognized and rejected.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`
}
