// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abgdnv/storefront/internal/platform/web"
	producterrors "github.com/abgdnv/storefront/internal/product/errors"
	"github.com/abgdnv/storefront/internal/product/service"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// ProductAPI defines HTTP handlers for product-related endpoints.
type ProductAPI interface {
	List(w http.ResponseWriter, r *http.Request)
	FindByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	DeleteByID(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

type api struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPI creates a new instance of ProductAPI with the provided service.
func NewAPI(service service.ProductService, logger *slog.Logger) ProductAPI {
	return &api{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "api"),
	}
}

// List returns every product, or a single one when the id query parameter is set.
func (a *api) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		a.FindByID(w, r)
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to list products")
	list, err := a.service.FindAll(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	a.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, a.logger, http.StatusOK, list)
}

// FindByID retrieves a product by the {id} path segment or the id query parameter.
func (a *api) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(w, r)
	if !ok {
		return
	}

	a.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := a.service.FindByID(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err, id, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	web.RespondJSON(w, a.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (a *api) Create(w http.ResponseWriter, r *http.Request) {
	var productCreateDto service.ProductCreateDto
	if err := decodeJSON(w, r, &productCreateDto); err != nil {
		a.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if err := a.validate.Struct(productCreateDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string)
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			a.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fields)
			web.RespondError(w, a.logger, http.StatusBadRequest, "Product name and price are required")
			return
		}
		a.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}

	newProduct, err := a.service.Create(r.Context(), productCreateDto)
	if err != nil {
		if errors.Is(err, producterrors.ErrInvalidProduct) {
			web.RespondError(w, a.logger, http.StatusBadRequest, "Product name and price are required")
			return
		}
		a.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	a.logger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, a.logger, http.StatusCreated, newProduct)
}

// Update merges the JSON body over an existing product. An absent product
// is answered with 404 even when the body cannot be decoded.
func (a *api) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(w, r)
	if !ok {
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	var patch service.ProductPatchDto
	if err := decodeJSON(w, r, &patch); err != nil {
		if existsErr := a.service.Exists(r.Context(), id); existsErr != nil {
			a.respondServiceError(w, r, existsErr, id, fmt.Sprintf("Failed to update product with ID %d", id))
			return
		}
		a.logger.ErrorContext(r.Context(), "Error decoding request body", "ID", id, "error", err)
		web.RespondError(w, a.logger, http.StatusInternalServerError, "Failed to update product")
		return
	}

	updated, err := a.service.Update(r.Context(), id, patch)
	if err != nil {
		a.respondServiceError(w, r, err, id, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	a.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, a.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (a *api) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(w, r)
	if !ok {
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := a.service.DeleteByID(r.Context(), id); err != nil {
		a.respondServiceError(w, r, err, id, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	a.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, a.logger, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// HealthCheck is a simple health check endpoint.
func (a *api) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps ErrProductNotFound to 404 and anything else to a
// generic 500 carrying failMsg.
func (a *api) respondServiceError(w http.ResponseWriter, r *http.Request, err error, id int, failMsg string) {
	if errors.Is(err, producterrors.ErrProductNotFound) {
		a.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, a.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		return
	}
	a.logger.ErrorContext(r.Context(), "Product operation failed", "ID", id, "error", err)
	web.RespondError(w, a.logger, http.StatusInternalServerError, failMsg)
}

// parseID reads the product ID from the {id} path segment, falling back to the
// id query parameter. Returns the ID and a boolean indicating success.
func (a *api) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	if raw == "" {
		web.RespondError(w, a.logger, http.StatusBadRequest, "Product ID is required")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		web.RespondError(w, a.logger, http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", raw))
		return 0, false
	}
	return id, true
}

// decodeJSON reads a single JSON value of at most maxBodyBytes from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must have only a single json value")
	}
	return nil
}
