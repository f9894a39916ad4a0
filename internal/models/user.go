package models

import "time"

// Roles recognised on user records. Moderation endpoints are restricted to
// RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User mirrors the identity provider's view of a visitor. The API never
// creates users on its own; records arrive through the session sync endpoint
// and are only read afterwards to gate moderation access.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OpenID       string    `gorm:"size:64;uniqueIndex;not null" json:"openId"`
	Name         string    `gorm:"size:255" json:"name"`
	Email        string    `gorm:"size:320" json:"email"`
	LoginMethod  string    `gorm:"size:64" json:"loginMethod"`
	Role         string    `gorm:"size:32;not null;default:user" json:"role"`
	LastSignedIn time.Time `json:"lastSignedIn"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
