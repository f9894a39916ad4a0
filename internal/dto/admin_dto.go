package dto

import "time"

// MessageListRequest carries paging parameters for the moderation list call.
type MessageListRequest struct {
	Limit  int `json:"limit" validate:"gte=0,lte=200"`
	Offset int `json:"offset" validate:"gte=0"`
}

// MessageActionRequest identifies a single message for markAsRead/delete.
type MessageActionRequest struct {
	ID uint `json:"id" validate:"required"`
}

// MessageResponse represents a stored message returned to the moderator.
type MessageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageListResponse contains one page of messages plus the total count the
// client needs for pagination math.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
}
