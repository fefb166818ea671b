package models

import "time"

type User struct {
	ID            string    `gorm:"type:varchar(36);primarykey" json:"id"`
	GoogleSubject string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Email         string    `gorm:"type:varchar(255);not null" json:"email"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	AvatarURL     string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastLoginAt   time.Time `json:"last_login_at"`

	// Relations
	Todos         []Todo         `gorm:"foreignKey:OwnerID" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}
