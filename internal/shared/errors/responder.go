package errors

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/domainerr"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes Problem Details, consulting its mappers before falling
// back to a 500.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	mappers []ErrorMapper
}

// NewResponder creates a responder that maps domain not-found errors plus
// any additional mappers, in order.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: append([]ErrorMapper{NotFoundMapper}, mappers...)}
}

// Respond sends a ProblemDetail response with proper content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts err to a ProblemDetail and responds.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

// Problem resolves the ProblemDetail for err.
func (r *Responder) Problem(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	return ErrInternal.WithDetail(err.Error())
}

// NotFoundMapper answers 404 for domain not-found errors. The detail keeps
// the domain message, which names the entity type and identity.
func NotFoundMapper(err error) (ProblemDetail, bool) {
	nf, ok := domainerr.AsNotFound(err)
	if !ok {
		return ProblemDetail{}, false
	}
	return NewNotFoundProblem(nf.Entity, nf.ID).WithDetail(nf.Error()), true
}

// SentinelMapper answers with problem, carrying the error text as detail,
// whenever err wraps target.
func SentinelMapper(target error, problem ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		if !errors.Is(err, target) {
			return ProblemDetail{}, false
		}
		return problem.WithDetail(err.Error()), true
	}
}
