package models

import "time"

// Message is a persisted contact-form submission. Name, email, message and
// createdAt are immutable after creation; only the read flag may change, and
// only from false to true.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:160;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
