package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tabibito/portfolio-api/internal/models"
)

// ErrOpenIDRequired indicates an upsert without an external identity.
var ErrOpenIDRequired = errors.New("user openId is required")

// UserRepository stores the identity provider's user records. Only fields the
// caller actually supplied are merged on conflict; the record keyed by the
// configured owner openId defaults to the admin role.
type UserRepository interface {
	UpsertByOpenID(ctx context.Context, user *models.User) error
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
}

type userRepository struct {
	db          *gorm.DB
	ownerOpenID string
	logger      zerolog.Logger
}

// NewUserRepository constructs a repository backed by GORM. db may be nil.
func NewUserRepository(db *gorm.DB, ownerOpenID string, logger zerolog.Logger) UserRepository {
	return &userRepository{
		db:          db,
		ownerOpenID: ownerOpenID,
		logger:      logger.With().Str("component", "user_repository").Logger(),
	}
}

func (r *userRepository) UpsertByOpenID(ctx context.Context, user *models.User) error {
	if user == nil || user.OpenID == "" {
		return ErrOpenIDRequired
	}

	if r.db == nil {
		r.logger.Warn().Str("open_id", user.OpenID).Msg("cannot upsert user: storage not configured")
		return nil
	}

	if user.Role == "" {
		if user.OpenID == r.ownerOpenID && r.ownerOpenID != "" {
			user.Role = models.RoleAdmin
		} else {
			user.Role = models.RoleUser
		}
	}
	if user.LastSignedIn.IsZero() {
		user.LastSignedIn = time.Now().UTC()
	}

	assignments := map[string]interface{}{
		"last_signed_in": user.LastSignedIn,
	}
	if user.Name != "" {
		assignments["name"] = user.Name
	}
	if user.Email != "" {
		assignments["email"] = user.Email
	}
	if user.LoginMethod != "" {
		assignments["login_method"] = user.LoginMethod
	}
	if user.OpenID == r.ownerOpenID && r.ownerOpenID != "" {
		assignments["role"] = models.RoleAdmin
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "open_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(user).Error
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	if r.db == nil {
		r.logger.Warn().Str("open_id", openID).Msg("cannot get user: storage not configured")
		return nil, nil
	}

	var user models.User
	err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
