package handler

import "github.com/shoply/catalog-system/internal/core/domain"

// messageResponse is the envelope for responses carrying no payload.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type signupResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// --- Products ---

// productResponse wraps a single product per the API contract.
type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

// productListResponse wraps the full catalog listing.
type productListResponse struct {
	Message  string            `json:"message"`
	Count    int               `json:"count"`
	Products []*domain.Product `json:"products"`
}
