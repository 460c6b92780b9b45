package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Favorites *FavoritesHTTP
	AuthMW    *AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout, d.AuthMW.Optional)
	v1.POST("/refresh", d.Auth.Refresh)
	v1.GET("/session", d.Auth.Session, d.AuthMW.Optional)

	v1.GET("/products", d.Catalog.GetProducts)
	v1.GET("/products/:id", d.Catalog.GetProduct)
	v1.GET("/categories", d.Catalog.GetCategories)
	v1.GET("/search", d.Catalog.Search)

	cart := v1.Group("/cart", CartOwner)
	cart.GET("", d.Cart.GetCart)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items", d.Cart.UpdateQuantity)
	cart.DELETE("/items", d.Cart.RemoveItem)
	cart.DELETE("", d.Cart.Clear)

	favorites := v1.Group("/favorites")
	favorites.GET("", d.Favorites.GetFavorites, d.AuthMW.RequireLogin)
	favorites.POST("/toggle", d.Favorites.Toggle, d.AuthMW.Optional)
}
