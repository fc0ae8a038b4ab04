//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-commerce-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type categoryPayload struct {
	CategoryID    int64  `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
}

type productPayload struct {
	ProductID    int64            `json:"productId"`
	ProductTitle string           `json:"productTitle"`
	SKU          string           `json:"sku"`
	PriceUnit    float64          `json:"priceUnit"`
	Quantity     int32            `json:"quantity"`
	Category     *categoryPayload `json:"category"`
}

type cartPayload struct {
	CartID int64 `json:"cartId"`
	UserID int64 `json:"userId,omitempty"`
}

type orderPayload struct {
	OrderID   int64        `json:"orderId,omitempty"`
	OrderDesc string       `json:"orderDesc"`
	OrderFee  float64      `json:"orderFee"`
	Cart      *cartPayload `json:"cart"`
	CartID    int64        `json:"cartId,omitempty"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestShopPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	productMatcher := matchers.Map{
		"productId":    matchers.Like(pacttest.ExistingProductID),
		"productTitle": matchers.Like(pacttest.ExampleProductTitle()),
		"sku":          matchers.Like(pacttest.ExampleSKU()),
		"priceUnit":    matchers.Like(pacttest.ExamplePrice()),
		"quantity":     matchers.Like(3),
		"category": matchers.Map{
			"categoryId":    matchers.Like(pacttest.ExistingCategoryID),
			"categoryTitle": matchers.Like(pacttest.ExampleCategoryTitle()),
		},
	}

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to list products").
		WithRequest("GET", "/api/products").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"items": matchers.EachLike(productMatcher, 1)})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.MissingProductID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
				"detail": matchers.Term(fmt.Sprintf("Product with id: %d not found", pacttest.MissingProductID), `^Product with id: \d+ not found$`),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartExists).
		UponReceiving("a request to place an order on an existing cart").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"orderDesc": matchers.Like("first order"),
				"orderFee":  matchers.Like(100.0),
				"cart":      matchers.Map{"cartId": matchers.Like(pacttest.ExistingCartID)},
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"orderId":   matchers.Like(1),
				"orderDesc": matchers.Like("first order"),
				"orderFee":  matchers.Like(100.0),
				"cartId":    matchers.Like(pacttest.ExistingCartID),
				"cart": matchers.Map{
					"cartId": matchers.Like(pacttest.ExistingCartID),
					"userId": matchers.Like(pacttest.CartUserID),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newShopClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var product productPayload
		if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID), nil, &product); err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ProductID != pacttest.ExistingProductID || product.Category == nil {
			return fmt.Errorf("unexpected product %+v", product)
		}

		var list struct {
			Items []productPayload `json:"items"`
		}
		if err := client.do(ctx, http.MethodGet, "/api/products", nil, &list); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(list.Items) == 0 {
			return errors.New("expected at least one product")
		}

		err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", pacttest.MissingProductID), nil, nil)
		var apiErr apiError
		if !errors.As(err, &apiErr) || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for product %d, got %v", pacttest.MissingProductID, err)
		}

		var order orderPayload
		request := orderPayload{OrderDesc: "first order", OrderFee: 100, Cart: &cartPayload{CartID: pacttest.ExistingCartID}}
		if err := client.do(ctx, http.MethodPost, "/api/orders", request, &order); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.OrderID == 0 || order.Cart == nil || order.Cart.CartID != pacttest.ExistingCartID || order.CartID != pacttest.ExistingCartID {
			return fmt.Errorf("unexpected order %+v", order)
		}
		return nil
	})
	require.NoError(t, err)
}

type shopClient struct {
	baseURL    string
	httpClient *http.Client
}

func newShopClient(config pactconsumer.MockServerConfig) *shopClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &shopClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *shopClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
