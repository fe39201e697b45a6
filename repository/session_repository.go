package repository

import (
	"context"
	"time"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RevokedSession{JTI: jti, ExpiresAt: expiresAt}).Error
}

func (r *SessionRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.RevokedSession{}).
		Where("jti = ?", jti).
		Count(&count).Error
	return count > 0, err
}

// PurgeExpired deletes revocations whose token has expired on its own.
func (r *SessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.RevokedSession{})
	return res.RowsAffected, res.Error
}
