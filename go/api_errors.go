package commerceserver

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	apierrors.SentinelMapper(catalogapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.SentinelMapper(ordersapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.SentinelMapper(ordersports.ErrIdempotencyConflict, apierrors.ErrConflict),
	apierrors.SentinelMapper(ordersports.ErrIdempotencyInProgress, apierrors.ErrConflict),
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError answers 404 for NotFound, 400 for invalid input, 409
// for reused idempotency keys and 500 for everything else.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if problem := responder.Problem(err); problem.Status >= 500 {
		_ = c.Error(err)
	}
	responder.RespondError(c, err)
}
