package commerceserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

const idParam = "id"

// parseIDParam binds the :id path segment as a positive integer. It writes
// the 400 response itself when binding fails.
func parseIDParam(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", idParam, c.Param(idParam), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("invalid %s: %s", idParam, err.Error())))
		return 0, false
	}
	if id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("%s must be a positive integer", idParam)))
		return 0, false
	}
	return id, true
}

// bindBody decodes and validates the JSON body into dst.
func bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag() + fe.Param()
		}
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return false
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	return false
}
