package models

import (
	"time"

	"gorm.io/datatypes"
)

// Item lifecycle statuses.
const (
	ItemStatusPendingApproval = "pending_approval"
	ItemStatusAvailable       = "available"
	ItemStatusRedeemed        = "redeemed"
	ItemStatusSwapped         = "swapped"
)

// Item represents one listed garment.
type Item struct {
	ID             string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title          string                      `json:"title" gorm:"type:varchar(100);not null"`
	Description    string                      `json:"description" gorm:"type:text"`
	Category       string                      `json:"category" gorm:"type:varchar(50);index"`
	Type           string                      `json:"type" gorm:"type:varchar(50)"`
	Size           string                      `json:"size" gorm:"type:varchar(20)"`
	Condition      string                      `json:"condition" gorm:"type:varchar(20)"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	Images         datatypes.JSONSlice[string] `json:"images"`
	PointsRequired int                         `json:"points_required" gorm:"not null"`
	UserID         string                      `json:"user_id" gorm:"type:varchar(36);index"`
	UploaderName   string                      `json:"uploader_name" gorm:"type:varchar(100)"`
	UploaderEmail  string                      `json:"uploader_email" gorm:"type:varchar(255)"`
	Status         string                      `json:"status" gorm:"type:varchar(20);index"`
	Location       string                      `json:"location" gorm:"type:varchar(100)"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// PrimaryImage returns the first image reference, or "" when the item has none.
func (i Item) PrimaryImage() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

// IsAvailable reports whether the item can currently be swapped or redeemed.
func (i Item) IsAvailable() bool {
	return i.Status == ItemStatusAvailable
}
