// Package seed loads catalog and cart fixtures from YAML through the domain
// services, so fixtures obey the same invariants as API writes.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	catalogtypes "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// Fixture is the YAML document shape.
type Fixture struct {
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
	Carts      []CartFixture     `yaml:"carts"`
}

type CategoryFixture struct {
	Title    string `yaml:"title"`
	ImageURL string `yaml:"imageUrl"`
}

// ProductFixture references its category by title.
type ProductFixture struct {
	Title    string `yaml:"title"`
	ImageURL string `yaml:"imageUrl"`
	SKU      string `yaml:"sku"`
	Price    string `yaml:"price"`
	Quantity int32  `yaml:"quantity"`
	Category string `yaml:"category"`
}

type CartFixture struct {
	UserID int64 `yaml:"userId"`
}

// Targets are the services fixtures are written through.
type Targets struct {
	Categories catalogports.CategoryService
	Products   catalogports.ProductService
	Carts      ordersports.CartService
}

// Summary counts created entities.
type Summary struct {
	Categories int
	Products   int
	Carts      int
}

// ErrUnknownCategory is returned when a product names a category absent from the fixture.
var ErrUnknownCategory = errors.New("unknown category")

// LoadFile reads a fixture from path.
func LoadFile(path string) (Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixture{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(r io.Reader) (Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return fx, nil
}

// Apply creates categories, then products, then carts.
func Apply(ctx context.Context, fx Fixture, t Targets) (Summary, error) {
	var sum Summary
	categoryIDs := make(map[string]int64, len(fx.Categories))
	for _, c := range fx.Categories {
		saved, err := t.Categories.Save(ctx, catalogtypes.CategoryDTO{CategoryTitle: c.Title, ImageURL: c.ImageURL})
		if err != nil {
			return sum, fmt.Errorf("seed category %q: %w", c.Title, err)
		}
		categoryIDs[strings.ToLower(c.Title)] = saved.CategoryID
		sum.Categories++
	}
	for _, p := range fx.Products {
		categoryID, ok := categoryIDs[strings.ToLower(p.Category)]
		if !ok {
			return sum, fmt.Errorf("seed product %q: %w %q", p.Title, ErrUnknownCategory, p.Category)
		}
		price := decimal.Zero
		if strings.TrimSpace(p.Price) != "" {
			var err error
			if price, err = decimal.NewFromString(p.Price); err != nil {
				return sum, fmt.Errorf("seed product %q: price: %w", p.Title, err)
			}
		}
		_, err := t.Products.Save(ctx, catalogtypes.ProductDTO{
			ProductTitle: p.Title,
			ImageURL:     p.ImageURL,
			SKU:          p.SKU,
			PriceUnit:    price,
			Quantity:     p.Quantity,
			Category:     &catalogtypes.CategoryDTO{CategoryID: categoryID},
		})
		if err != nil {
			return sum, fmt.Errorf("seed product %q: %w", p.Title, err)
		}
		sum.Products++
	}
	for _, c := range fx.Carts {
		if _, err := t.Carts.Save(ctx, ordertypes.CartDTO{UserID: c.UserID}); err != nil {
			return sum, fmt.Errorf("seed cart for user %d: %w", c.UserID, err)
		}
		sum.Carts++
	}
	return sum, nil
}
