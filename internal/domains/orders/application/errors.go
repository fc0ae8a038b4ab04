package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/domainerr"
)

const (
	orderEntity = "Order"
	cartEntity  = "Cart"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrMissingIdentity is returned by Update when no identity was supplied.
	ErrMissingIdentity = errors.New("identity is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCart) || errors.Is(err, ErrMissingIdentity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func lookupError(entity string, id int64, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return domainerr.NewNotFound(entity, id)
	}
	return err
}
