package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/domainerr"
)

const (
	productEntity  = "Product"
	categoryEntity = "Category"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrMissingIdentity is returned by Update when no identity was supplied.
	ErrMissingIdentity = errors.New("identity is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCategory) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, ErrMissingIdentity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// lookupError turns a repository miss into the domain NotFound error and
// passes every other failure through untouched.
func lookupError(entity string, id int64, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return domainerr.NewNotFound(entity, id)
	}
	return err
}
