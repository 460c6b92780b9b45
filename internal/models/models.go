package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product rows are owned by the catalog; the storefront only reads them.
type Product struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string   `gorm:"not null"                 json:"name"`
	Description   string   `json:"description"`
	Price         float64  `gorm:"not null"                 json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Discount      *uint    `json:"discount,omitempty"`
	Category      string   `gorm:"index;not null"           json:"category"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	Reviews       uint     `json:"reviews"`
	Featured      bool     `gorm:"index"                    json:"featured"`
	Sizes         []string `gorm:"serializer:json"          json:"sizes,omitempty"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null"                 json:"name"`
	Slug  string `gorm:"uniqueIndex;not null"     json:"slug"`
	Image string `json:"image"`
	Icon  string `json:"icon"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null"             json:"name"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"default:false"            json:"revoked"`
}

// Favorite is pure membership: the (user, product) pair either exists or it
// does not.
type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                                    json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product"   json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_product"             json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
