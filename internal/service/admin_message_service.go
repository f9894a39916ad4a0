package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/models"
	"github.com/tabibito/portfolio-api/internal/repository"
)

// ErrForbidden indicates the caller lacks the admin role.
var ErrForbidden = errors.New("forbidden")

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Actor identifies the authenticated caller of a moderation operation.
type Actor struct {
	OpenID string
	Role   string
}

func (a Actor) isAdmin() bool {
	return a.Role == models.RoleAdmin
}

// AdminMessageService exposes the moderation operations over stored messages.
// Every method checks the actor's role before touching storage and fails
// closed with ErrForbidden.
type AdminMessageService interface {
	List(ctx context.Context, actor Actor, limit, offset int) (dto.MessageListResponse, error)
	MarkAsRead(ctx context.Context, actor Actor, id uint) error
	Delete(ctx context.Context, actor Actor, id uint) error
}

type adminMessageService struct {
	messages repository.MessageRepository
	logger   zerolog.Logger
}

// NewAdminMessageService constructs the moderation service.
func NewAdminMessageService(messages repository.MessageRepository, logger zerolog.Logger) AdminMessageService {
	return &adminMessageService{
		messages: messages,
		logger:   logger.With().Str("component", "admin_message_service").Logger(),
	}
}

func (s *adminMessageService) List(ctx context.Context, actor Actor, limit, offset int) (dto.MessageListResponse, error) {
	if !actor.isAdmin() {
		return dto.MessageListResponse{}, ErrForbidden
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.messages.List(ctx, limit, offset)
	if err != nil {
		return dto.MessageListResponse{}, err
	}
	total, err := s.messages.Count(ctx)
	if err != nil {
		return dto.MessageListResponse{}, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		items = append(items, toMessageResponse(message))
	}

	return dto.MessageListResponse{Messages: items, Total: total}, nil
}

// MarkAsRead flips the read flag. Marking an already-read or missing message
// is not an error.
func (s *adminMessageService) MarkAsRead(ctx context.Context, actor Actor, id uint) error {
	if !actor.isAdmin() {
		return ErrForbidden
	}

	if err := s.messages.MarkRead(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("actor", actor.OpenID).Uint("message_id", id).Msg("message marked as read")
	return nil
}

// Delete removes a message. Deleting an already-deleted id is not an error.
func (s *adminMessageService) Delete(ctx context.Context, actor Actor, id uint) error {
	if !actor.isAdmin() {
		return ErrForbidden
	}

	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("actor", actor.OpenID).Uint("message_id", id).Msg("message deleted")
	return nil
}

func toMessageResponse(message models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Message:   message.Message,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	}
}
