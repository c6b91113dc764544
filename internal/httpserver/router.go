package httpserver

import (
	"net/http"

	"github.com/catalogo-poli/shop/internal/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	ProductHandler *ProductHTTP
	AuthMW         *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authGroup := e.Group("/auth")
	authGroup.POST("/token", d.AuthHandler.Token)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.GET("/logout", d.AuthHandler.LogOut)

	cart := e.Group("/carrito", d.AuthMW.RequireAuth)
	cart.POST("/agregar", d.CartHandler.AddToCart)
	cart.DELETE("/eliminar/:article_id", d.CartHandler.RemoveFromCart)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("/vaciar", d.CartHandler.ClearCart)
	cart.POST("/comprar", d.CartHandler.Purchase)

	products := e.Group("/productos", d.AuthMW.RequireAuth)
	products.GET("/catalogo", d.ProductHandler.GetCatalog)
	products.GET("/detalle-articulo/:article_id", d.ProductHandler.GetArticleDetail)
	products.GET("/buscar", d.ProductHandler.SearchArticles)
	products.POST("/busqueda-avanzada", d.ProductHandler.AdvancedSearch)

	admin := e.Group("/productos", d.AuthMW.RequireAdmin)
	admin.POST("/agregar-articulo", d.ProductHandler.CreateArticle)
	admin.POST("/agregar-multiples-articulos", d.ProductHandler.CreateArticles)
	admin.PUT("/actualizar/:id", d.ProductHandler.UpdateArticle)
	admin.DELETE("/eliminar/:id", d.ProductHandler.DeleteArticle)
}
