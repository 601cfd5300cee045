// Package errors provides custom error types for product-related operations.
package errors

import "errors"

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidProduct is returned when a product is missing a required field.
var ErrInvalidProduct = errors.New("invalid product")
