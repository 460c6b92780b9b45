package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/models"
)

func (r *GormRepo) SaveRefresh(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error {
	row := models.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

// RefreshUsable reports whether the token row exists, has not expired and has
// not been revoked.
func (r *GormRepo) RefreshUsable(ctx context.Context, jti string) (bool, error) {
	var row models.RefreshToken
	err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !row.Revoked && row.ExpiresAt.After(time.Now()), nil
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}
