// Package commerceserver exposes the catalog and orders services over HTTP.
package commerceserver

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handlers mounted by NewRouter.
type ApiHandleFunctions struct {
	ProductAPI  ProductAPI
	CategoryAPI CategoryAPI
	OrderAPI    OrderAPI
	CartAPI     CartAPI
	HealthAPI   HealthAPI
}

func init() {
	// money travels as a JSON number
	decimal.MarshalJSONWithoutQuotes = true
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterDecimalValidation(v)
	}
}

// RegisterDecimalValidation lets numeric validator tags such as gte=0 apply
// to decimal.Decimal fields.
func RegisterDecimalValidation(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler was not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	routes := []Route{
		{"Health", http.MethodGet, "/actuator/health", handleFunctions.HealthAPI.Health},
	}
	routes = append(routes, resourceRoutes("Product", "/api/products", handleFunctions.ProductAPI.handlers())...)
	routes = append(routes, resourceRoutes("Category", "/api/categories", handleFunctions.CategoryAPI.handlers())...)
	routes = append(routes, resourceRoutes("Order", "/api/orders", handleFunctions.OrderAPI.handlers())...)
	routes = append(routes, resourceRoutes("Cart", "/api/carts", handleFunctions.CartAPI.handlers())...)
	return routes
}

func resourceRoutes(name, base string, h crudHandlers) []Route {
	item := base + "/:" + idParam
	return []Route{
		{"List" + name, http.MethodGet, base, h.list},
		{"Get" + name, http.MethodGet, item, h.get},
		{"Create" + name, http.MethodPost, base, h.create},
		{"Update" + name, http.MethodPut, base, h.update},
		{"Update" + name + "ById", http.MethodPut, item, h.updateByID},
		{"Delete" + name, http.MethodDelete, item, h.remove},
	}
}
