package commerceserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// crudService is the operation set every domain service exposes.
type crudService[D any] interface {
	FindAll(ctx context.Context) ([]D, error)
	FindByID(ctx context.Context, id int64) (D, error)
	Save(ctx context.Context, dto D) (D, error)
	Update(ctx context.Context, dto D) (D, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Collection wraps list responses.
type Collection[D any] struct {
	Items []D `json:"items"`
}

type crudHandlers struct {
	list, get, create, update, updateByID, remove gin.HandlerFunc
}

// resource serves the five service operations for one DTO type. setID
// copies the path identity into the body for PUT /:id.
type resource[D any] struct {
	service crudService[D]
	setID   func(*D, int64)
	create  func(ctx context.Context, c *gin.Context, dto D) (D, error)
}

func (r resource[D]) handlers() crudHandlers {
	if r.service == nil {
		return crudHandlers{}
	}
	return crudHandlers{
		list:       r.List,
		get:        r.Get,
		create:     r.Create,
		update:     r.Update,
		updateByID: r.UpdateByID,
		remove:     r.Delete,
	}
}

func (r resource[D]) List(c *gin.Context) {
	items, err := r.service.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, Collection[D]{Items: items})
}

func (r resource[D]) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dto, err := r.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (r resource[D]) Create(c *gin.Context) {
	var dto D
	if !bindBody(c, &dto) {
		return
	}
	var (
		saved D
		err   error
	)
	if r.create != nil {
		saved, err = r.create(c.Request.Context(), c, dto)
	} else {
		saved, err = r.service.Save(c.Request.Context(), dto)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (r resource[D]) Update(c *gin.Context) {
	var dto D
	if !bindBody(c, &dto) {
		return
	}
	r.replace(c, dto)
}

func (r resource[D]) UpdateByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var dto D
	if !bindBody(c, &dto) {
		return
	}
	r.setID(&dto, id)
	r.replace(c, dto)
}

func (r resource[D]) replace(c *gin.Context, dto D) {
	updated, err := r.service.Update(c.Request.Context(), dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r resource[D]) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := r.service.DeleteByID(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, true)
}
