package models

import "time"

// Redemption records an item bought with points.
type Redemption struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);index"`
	ItemID     string    `json:"item_id" gorm:"type:varchar(36);index"`
	ItemTitle  string    `json:"item_title" gorm:"type:varchar(100)"`
	PointsUsed int       `json:"points_used"`
	Status     string    `json:"status" gorm:"type:varchar(20)"` // "completed"
	CreatedAt  time.Time `json:"created_at"`
}
