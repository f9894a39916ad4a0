package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/models"
	"github.com/tabibito/portfolio-api/internal/observability"
	"github.com/tabibito/portfolio-api/internal/repository"
)

// ErrDuplicateSubmission indicates a submission with the same checksum was
// accepted recently. Only reported when the optional dedupe guard is active.
var ErrDuplicateSubmission = errors.New("duplicate contact submission")

// Notifier delivers an out-of-band notification for a new contact message.
type Notifier interface {
	Configured() bool
	Notify(ctx context.Context, name, email, message string) error
}

// ContactService runs the submission pipeline: validate, persist, notify.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) error
}

type contactService struct {
	messages  repository.MessageRepository
	notifier  Notifier
	guard     *redis.Client
	dedupeTTL time.Duration
	logger    zerolog.Logger
}

// NewContactService constructs the contact submission service. guard may be
// nil, in which case duplicate submissions are not filtered.
func NewContactService(messages repository.MessageRepository, notifier Notifier, guard *redis.Client, logger zerolog.Logger) ContactService {
	return &contactService{
		messages:  messages,
		notifier:  notifier,
		guard:     guard,
		dedupeTTL: 5 * time.Minute,
		logger:    logger.With().Str("component", "contact_service").Logger(),
	}
}

// Submit processes one contact form submission. Validation failures abort
// before any side effect. A persistence failure is logged and the pipeline
// continues to notification: the operator prefers a notification without a
// stored record over losing the lead entirely.
func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) error {
	if err := ValidateSubmission(req.Name, req.Email, req.Message); err != nil {
		observability.ContactSubmissions().WithLabelValues("rejected").Inc()
		return err
	}

	if s.guard != nil {
		key := fmt.Sprintf("contact:dedupe:%s", computeChecksum(req.Name, req.Email, req.Message))
		ok, err := s.guard.SetNX(ctx, key, 1, s.dedupeTTL).Result()
		if err != nil {
			// The guard is advisory; a broken cache never blocks a lead.
			s.logger.Warn().Err(err).Msg("dedupe guard unavailable, accepting submission")
		} else if !ok {
			observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
			return ErrDuplicateSubmission
		}
	}

	message := models.Message{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.messages.Save(ctx, &message); err != nil {
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("failed to save message, continuing with notification")
	}

	if err := s.notifier.Notify(ctx, req.Name, req.Email, req.Message); err != nil {
		// The relay swallows delivery failures itself; anything surfacing
		// here is unexpected but still must not block the submitter.
		s.logger.Error().Err(err).Msg("notification relay returned an error")
	}

	observability.ContactSubmissions().WithLabelValues("accepted").Inc()
	s.logger.Info().Str("email", maskEmail(req.Email)).Msg("contact submission processed")
	return nil
}

func computeChecksum(parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(strings.TrimSpace(strings.ToLower(part))))
		hasher.Write([]byte("|"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func maskEmail(email string) string {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 2 {
		local = local[:1] + "***"
	} else {
		local = local[:1] + "***" + local[len(local)-1:]
	}
	return local + "@" + parts[1]
}
