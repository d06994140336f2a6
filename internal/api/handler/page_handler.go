package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoply/catalog-system/internal/api/middleware"
	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// PageHandler renders the server-side views. All pages behind RequireAuth
// receive the authenticated user for the template header.
type PageHandler struct {
	service ports.CatalogService
}

func NewPageHandler(service ports.CatalogService) *PageHandler {
	return &PageHandler{service: service}
}

type pageData struct {
	User     *domain.User
	Product  *domain.Product
	Products []*domain.Product
}

// UploadPage renders the product upload form on GET /.
func (h *PageHandler) UploadPage(c echo.Context) error {
	return c.Render(http.StatusOK, "upload", pageData{User: middleware.UserFromContext(c)})
}

// ProductsPage renders the catalog listing on GET /products.
func (h *PageHandler) ProductsPage(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products", pageData{
		User:     middleware.UserFromContext(c),
		Products: products,
	})
}

// ProductPage renders a single product on GET /products/:id.
func (h *PageHandler) ProductPage(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "product", pageData{
		User:    middleware.UserFromContext(c),
		Product: product,
	})
}

// EditPage renders the edit form on GET /edit/:id.
func (h *PageHandler) EditPage(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit", pageData{
		User:    middleware.UserFromContext(c),
		Product: product,
	})
}
