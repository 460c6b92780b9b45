package transport

import "github.com/tubarao/storefront/internal/cart"

type RegisterRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Name            string `json:"name"             validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type AddCartItemRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Quantity  uint   `json:"quantity"`
}

type CartQuantityRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size"       validate:"required"`
	Quantity  uint   `json:"quantity"`
}

type RemoveCartItemRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size"       validate:"required"`
}

type CartResponse struct {
	Items []cart.LineItem `json:"items"`
	Total float64         `json:"total"`
	Count uint            `json:"count"`
}

type ToggleFavoriteRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

type ToggleFavoriteResponse struct {
	ProductID uint `json:"product_id"`
	Favorited bool `json:"favorited"`
}

type FavoritesResponse struct {
	ProductIDs []uint `json:"product_ids"`
}
