package commerceserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthAPI serves /actuator/health.
type HealthAPI struct {
	checks map[string]HealthCheck
}

func NewHealthAPI(checks map[string]HealthCheck) HealthAPI {
	return HealthAPI{checks: checks}
}

// Get /actuator/health
func (api HealthAPI) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{}
	status := "UP"
	for name, check := range api.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			components[name] = "DOWN"
			status = "DOWN"
			continue
		}
		components[name] = "UP"
	}
	body := gin.H{"status": status}
	if len(components) > 0 {
		body["components"] = components
	}
	code := http.StatusOK
	if status != "UP" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, body)
}
