package dto

import "time"

// SyncUserRequest carries the profile fields the identity collaborator pushes
// when a session is established. The openId comes from the verified session
// token, never from the body.
type SyncUserRequest struct {
	Name        string `json:"name" validate:"omitempty,max=255"`
	Email       string `json:"email" validate:"omitempty,email,max=320"`
	LoginMethod string `json:"loginMethod" validate:"omitempty,max=64"`
}

// UserResponse is the profile payload returned by the me endpoint.
type UserResponse struct {
	OpenID       string    `json:"openId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}
