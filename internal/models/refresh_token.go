package models

import "time"

type RefreshToken struct {
	ID        string     `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	TokenHash string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	DeviceID  string     `gorm:"type:varchar(255)" json:"device_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Usable reports whether the token can still be exchanged at the given time.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
