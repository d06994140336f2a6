package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shoply/catalog-system/internal/api/metrics"
	"github.com/shoply/catalog-system/internal/api/middleware"
	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// ProductHandler handles the JSON product API and the mutating form routes.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListJSON handles GET /api/products. The read API is deliberately public:
// it mirrors the catalog without exposing any account data.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productListResponse
// @Router       /api/products [get]
func (h *ProductHandler) ListJSON(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{
		Message:  "products fetched",
		Count:    len(products),
		Products: products,
	})
}

// GetJSON handles GET /api/products/:id. Public, same policy as ListJSON.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetJSON(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Message: "product fetched", Product: product})
}

// Upload handles POST /upload — creates a product from a multipart form.
//
// @Summary      Create a product listing
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title       formData  string  true   "Title"
// @Param        details     formData  string  true   "Details"
// @Param        price       formData  number  true   "Price"
// @Param        rating      formData  number  true   "Initial rating (0..5)"
// @Param        categories  formData  string  false  "Comma-separated categories"
// @Param        image       formData  file    true   "Product image"
// @Success      201  {object}  productResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      415  {object}  messageResponse
// @Router       /upload [post]
func (h *ProductHandler) Upload(c echo.Context) error {
	input, closeUpload, err := bindCreateInput(c)
	if err != nil {
		return err
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	product, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		countRejected(err)
		return err
	}
	metrics.ProductsCreatedTotal.Inc()

	if middleware.WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/products")
	}
	return c.JSON(http.StatusCreated, productResponse{Message: "product created", Product: product})
}

// Edit handles POST /edit/:id — partial update; image replaced only when a
// new file was uploaded.
//
// @Summary      Update a product listing
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /edit/{id} [post]
func (h *ProductHandler) Edit(c echo.Context) error {
	input, closeUpload, err := bindUpdateInput(c)
	if err != nil {
		return err
	}
	if closeUpload != nil {
		defer closeUpload()
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		countRejected(err)
		return err
	}

	if middleware.WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/products/"+product.ID)
	}
	return c.JSON(http.StatusOK, productResponse{Message: "product updated", Product: product})
}

// Delete handles POST /delete/:id. Deleting an absent product succeeds.
//
// @Summary      Delete a product listing
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /delete/{id} [post]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	if middleware.WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/products")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// bindCreateInput assembles the create DTO from the multipart form. Parse
// failures surface as unset fields so the service reports every offender in
// a single ValidationError.
func bindCreateInput(c echo.Context) (ports.CreateProductInput, func(), error) {
	input := ports.CreateProductInput{
		Title:      c.FormValue("title"),
		Details:    c.FormValue("details"),
		Categories: formValues(c, "categories"),
	}

	if v := c.FormValue("price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			input.Price = price
			input.PriceSet = true
		}
	}
	if v := c.FormValue("rating"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			input.Rate = rate
			input.RateSet = true
		}
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return input, nil, err
	}
	input.Image = upload
	return input, closeUpload, nil
}

func bindUpdateInput(c echo.Context) (ports.UpdateProductInput, func(), error) {
	var input ports.UpdateProductInput

	if v := c.FormValue("title"); v != "" {
		input.Title = &v
	}
	if v := c.FormValue("details"); v != "" {
		input.Details = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return input, nil, &domain.ValidationError{Fields: []string{"price"}}
		}
		input.Price = &price
	}
	if v := c.FormValue("rating"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 || rate > 5 {
			return input, nil, &domain.ValidationError{Fields: []string{"rating"}}
		}
		input.Rate = &rate
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return input, nil, err
	}
	input.Image = upload
	return input, closeUpload, nil
}

// formImage opens the uploaded image file, if any. A missing file is not an
// error here; presence requirements belong to the service.
func formImage(c echo.Context) (*ports.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}

	upload := &ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return upload, func() { _ = f.Close() }, nil
}

// formValues returns all values submitted under name, supporting both a
// repeated multipart field and a single comma-joined value.
func formValues(c echo.Context, name string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[name]; ok {
			return vals
		}
	}
	if v := c.FormValue(name); v != "" {
		return []string{v}
	}
	return nil
}

func countRejected(err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnsupportedMedia):
		metrics.UploadsRejectedTotal.WithLabelValues("media_type").Inc()
	case errors.As(err, &ve):
		metrics.UploadsRejectedTotal.WithLabelValues("validation").Inc()
	}
}
