package models

import "time"

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// StartingPoints is the balance granted at registration.
const StartingPoints = 100

// User represents a registered account.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(100)"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password    string    `json:"-" gorm:"type:varchar(255)"`
	Points      int       `json:"points" gorm:"not null;default:0"`
	Role        string    `json:"role" gorm:"type:varchar(10);default:user"`
	Location    string    `json:"location" gorm:"type:varchar(100)"`
	Bio         string    `json:"bio" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
