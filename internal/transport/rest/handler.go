// Package rest provides the HTTP handlers for the storefront API.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cihad/fakestore/internal/cart"
	"github.com/cihad/fakestore/internal/catalog"
	"github.com/cihad/fakestore/internal/flash"
	"github.com/cihad/fakestore/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// localeCookieMaxAge is one year, matching the locale cookie contract.
const localeCookieMaxAge = 60 * 60 * 24 * 365

type Handler struct {
	cart       *cart.Store
	catalog    catalog.Catalog
	validate   *validator.Validate
	logger     *slog.Logger
	production bool
}

// NewHandler creates a new instance of the storefront API handler.
func NewHandler(cartStore *cart.Store, cat catalog.Catalog, production bool, logger *slog.Logger) *Handler {
	return &Handler{
		cart:       cartStore,
		catalog:    cat,
		validate:   validator.New(),
		production: production,

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.FindProductByID)
		r.Get("/categories", h.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{id}", h.UpdateCartItem)
			r.Delete("/items/{id}", h.RemoveCartItem)
		})

		r.Route("/flash", func(r chi.Router) {
			r.Get("/", h.GetFlash)
			r.Post("/", h.SetFlash)
			r.Delete("/", h.ClearFlash)
		})
	})
	r.Post("/api/locale", h.SetLocale)
	r.Get("/healthz", h.HealthCheck)
}

// CartViewDto is the read view of the cart with its derived totals.
type CartViewDto struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

// ProductDto carries the product payload of an add-to-cart request.
type ProductDto struct {
	ID          int64          `json:"id"          validate:"required,min=1"`
	Title       string         `json:"title"       validate:"required"`
	Price       float64        `json:"price"       validate:"gte=0"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Image       string         `json:"image"`
	Rating      catalog.Rating `json:"rating"`
}

// QuantityDto carries an absolute quantity. Zero and below mean removal, so
// the field is deliberately unvalidated.
type QuantityDto struct {
	Quantity int `json:"quantity"`
}

// LocaleDto carries the locale switch request.
type LocaleDto struct {
	Locale string `json:"locale" validate:"required,oneof=tr en"`
}

// FlashDto carries a flash message to publish.
type FlashDto struct {
	Type    string `json:"type"    validate:"required,oneof=success error warning info"`
	Message string `json:"message" validate:"required"`
}

// ListProducts returns the product list, filtered and sorted by query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minPrice, ok := web.ParseOptionalFloat(r, w, mLogger, "minPrice", 0)
	if !ok {
		return
	}
	maxPrice, ok := web.ParseOptionalFloat(r, w, mLogger, "maxPrice", 0)
	if !ok {
		return
	}
	filter := catalog.Filter{
		Categories: web.ParseCSV(r, "categories"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       r.URL.Query().Get("sort"),
	}

	products := filter.Apply(h.catalog.Products(r.Context()))
	mLogger.DebugContext(r.Context(), "Product list served", "count", len(products))
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// FindProductByID returns a single product or 404 when the upstream yields none.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	product := h.catalog.ProductByID(r.Context(), id)
	if product == nil {
		mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, product)
}

// ListCategories returns all category names.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.catalog.Categories(r.Context()))
}

// GetCart returns the current cart items and derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartView())
}

// AddCartItem adds one unit of the posted product to the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto ProductDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	h.cart.AddItem(catalog.Product{
		ID:          dto.ID,
		Title:       dto.Title,
		Price:       dto.Price,
		Description: dto.Description,
		Category:    dto.Category,
		Image:       dto.Image,
		Rating:      dto.Rating,
	})
	mLogger.InfoContext(r.Context(), "Item added to cart", "product_id", dto.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartView())
}

// UpdateCartItem sets the quantity of a cart item. A quantity of zero or
// below removes the item.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto QuantityDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.cart.UpdateQuantity(id, dto.Quantity)
	mLogger.InfoContext(r.Context(), "Cart item quantity updated", "product_id", id, "quantity", dto.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartView())
}

// RemoveCartItem deletes a cart item. Removing an absent item is a no-op.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	h.cart.RemoveItem(id)
	mLogger.InfoContext(r.Context(), "Item removed from cart", "product_id", id)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartView())
}

// ClearCart empties the cart unconditionally.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	h.cart.Clear()
	mLogger.InfoContext(r.Context(), "Cart cleared")
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartView())
}

// GetFlash returns the pending flash message, or 204 when none is set.
// It does not clear the message; display-then-clear is the caller's contract.
func (h *Handler) GetFlash(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	msg := h.relay(w, r).Get()
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, msg)
}

// SetFlash publishes a flash message for the next page load.
func (h *Handler) SetFlash(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto FlashDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	h.relay(w, r).Set(dto.Type, dto.Message)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]bool{"success": true})
}

// ClearFlash deletes the pending flash message.
func (h *Handler) ClearFlash(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// SetLocale switches the UI locale. Anything but "tr" or "en" is rejected.
func (h *Handler) SetLocale(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto LocaleDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid locale")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		mLogger.WarnContext(r.Context(), "Invalid locale requested", "locale", dto.Locale)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid locale")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "locale",
		Value:  dto.Locale,
		Path:   "/",
		MaxAge: localeCookieMaxAge,
	})
	mLogger.InfoContext(r.Context(), "Locale updated", "locale", dto.Locale)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]bool{"success": true})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// cartView assembles the read view with its derived totals.
func (h *Handler) cartView() CartViewDto {
	return CartViewDto{
		Items:      h.cart.Items(),
		TotalItems: h.cart.TotalItemCount(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// relay builds the cookie-backed flash relay for this request lifecycle.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request) *flash.Relay {
	return flash.NewRelay(flash.NewCookieSlot(w, r, h.production))
}

// decodeAndValidate decodes the request body into dto and validates it,
// responding with a per-field error map on validation failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
