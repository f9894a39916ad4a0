package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tabibito/portfolio-api/internal/models"
)

// MessageRepository persists contact messages. The backing database is
// optional: when constructed with a nil handle every operation logs a warning
// and degrades to a no-op so the contact endpoint keeps working without
// storage.
type MessageRepository interface {
	Save(ctx context.Context, message *models.Message) error
	List(ctx context.Context, limit, offset int) ([]models.Message, error)
	Count(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewMessageRepository constructs a repository backed by GORM. db may be nil.
func NewMessageRepository(db *gorm.DB, logger zerolog.Logger) MessageRepository {
	return &messageRepository{
		db:     db,
		logger: logger.With().Str("component", "message_repository").Logger(),
	}
}

// Save inserts a new message with read=false and a server-assigned id and
// createdAt. Write failures on a configured backend propagate to the caller.
func (r *messageRepository) Save(ctx context.Context, message *models.Message) error {
	if r.db == nil {
		r.logger.Warn().Msg("cannot save message: storage not configured")
		return nil
	}

	message.Read = false
	return r.db.WithContext(ctx).Create(message).Error
}

// List returns one page of messages ordered newest first, with id as the
// tiebreak for identical timestamps. Query failures yield an empty page, not
// an error.
func (r *messageRepository) List(ctx context.Context, limit, offset int) ([]models.Message, error) {
	if r.db == nil {
		r.logger.Warn().Msg("cannot list messages: storage not configured")
		return []models.Message{}, nil
	}

	var messages []models.Message
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list messages")
		return []models.Message{}, nil
	}

	return messages, nil
}

// Count returns the total number of stored messages. An unavailable backend
// or a failed query both report zero; callers cannot tell the two apart.
func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		r.logger.Warn().Msg("cannot count messages: storage not configured")
		return 0, nil
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&total).Error; err != nil {
		r.logger.Error().Err(err).Msg("failed to count messages")
		return 0, nil
	}

	return total, nil
}

// MarkRead flips the read flag to true. Unknown ids are a no-op.
func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	if r.db == nil {
		r.logger.Warn().Uint("message_id", id).Msg("cannot mark message as read: storage not configured")
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("read", true).
		Error
}

// Delete removes the message with the given id. Unknown ids are a no-op.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if r.db == nil {
		r.logger.Warn().Uint("message_id", id).Msg("cannot delete message: storage not configured")
		return nil
	}

	return r.db.WithContext(ctx).Delete(&models.Message{}, id).Error
}
