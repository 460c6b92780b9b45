package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/models"
)

func (r *GormRepo) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ToggleFavorite flips membership of the (user, product) pair and reports the
// resulting state. The check and the write share one transaction so a toggle
// never observes its own half-applied state.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID uuid.UUID, productID uint) (bool, error) {
	favorited := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fav models.Favorite
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&fav).Error
		switch {
		case err == nil:
			return tx.Delete(&fav).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			return tx.Create(&models.Favorite{UserID: userID, ProductID: productID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}
