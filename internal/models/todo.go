package models

import "time"

type Todo struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID     string     `gorm:"type:varchar(36);index;not null" json:"owner_id"`
	ParentID    *string    `gorm:"type:varchar(36);index" json:"parent_id"`
	Title       string     `gorm:"type:varchar(256);not null" json:"title"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	SortOrder   int64      `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
