package models

import "time"

// Swap request statuses. Both accepted and rejected are terminal.
const (
	SwapStatusPending  = "pending"
	SwapStatusAccepted = "accepted"
	SwapStatusRejected = "rejected"
)

// SwapRequest represents a proposed exchange between two accounts.
type SwapRequest struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RequesterID      string    `json:"requester_id" gorm:"type:varchar(36);index"`
	RequesterName    string    `json:"requester_name" gorm:"type:varchar(100)"`
	ItemID           string    `json:"item_id" gorm:"type:varchar(36);index"`
	ItemTitle        string    `json:"item_title" gorm:"type:varchar(100)"`
	OwnerID          string    `json:"owner_id" gorm:"type:varchar(36);index"`
	OwnerName        string    `json:"owner_name" gorm:"type:varchar(100)"`
	OfferedItemID    string    `json:"offered_item_id,omitempty" gorm:"type:varchar(36)"`
	OfferedItemTitle string    `json:"offered_item_title,omitempty" gorm:"type:varchar(100)"`
	Message          string    `json:"message" gorm:"type:text"`
	Status           string    `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsTerminal reports whether the request can no longer change status.
func (s SwapRequest) IsTerminal() bool {
	return s.Status == SwapStatusAccepted || s.Status == SwapStatusRejected
}

// Involves reports whether userID is the requester or the owner.
func (s SwapRequest) Involves(userID string) bool {
	return s.RequesterID == userID || s.OwnerID == userID
}
