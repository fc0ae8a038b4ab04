//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "commerce-api"
	ConsumerName = "shop-portal"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 101 exists"
	StateProductMissing  = "no product with id 404"
	StateCartExists      = "cart with id 301 exists"
)

const (
	ExistingProductID  int64 = 101
	MissingProductID   int64 = 404
	ExistingCategoryID int64 = 11
	ExistingCartID     int64 = 301
	CartUserID         int64 = 7
)

const (
	exampleProductTitle  = "Laptop HP"
	exampleCategoryTitle = "Computers"
	exampleSKU           = "HP-PAV-15"
	examplePrice         = 1500.5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the shop portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductTitle and friends keep consumer and provider data aligned.
func ExampleProductTitle() string  { return exampleProductTitle }
func ExampleCategoryTitle() string { return exampleCategoryTitle }
func ExampleSKU() string           { return exampleSKU }
func ExamplePrice() float64        { return examplePrice }

// ExampleProductPayload is the wire form of the seeded product.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"productId":    ExistingProductID,
		"productTitle": exampleProductTitle,
		"sku":          exampleSKU,
		"priceUnit":    examplePrice,
		"quantity":     3,
		"category": map[string]any{
			"categoryId":    ExistingCategoryID,
			"categoryTitle": exampleCategoryTitle,
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
