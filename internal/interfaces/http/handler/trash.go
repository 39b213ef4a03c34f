package handler

import (
	"context"
	"net/http"
	"time"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/erp/papelera/internal/interfaces/http/dto"
	"github.com/erp/papelera/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DateLayout is the wire format of fecha_inicio and fecha_fin
const DateLayout = "2006-01-02"

// TrashUseCases is the application surface the trash endpoints call
type TrashUseCases interface {
	ListActive(ctx context.Context, p apptrash.Principal, category trash.Category) ([]apptrash.RecordResponse, error)
	ListTrash(ctx context.Context, p apptrash.Principal, category trash.Category, req apptrash.ListTrashRequest) ([]apptrash.RecordResponse, error)
	SoftDelete(ctx context.Context, p apptrash.Principal, category trash.Category, id int64) (*apptrash.RecordResponse, error)
	Restore(ctx context.Context, p apptrash.Principal, category trash.Category, id int64) (*apptrash.RestoreResult, error)
}

// TrashHandler serves the per-category record, trash and restore endpoints
type TrashHandler struct {
	BaseHandler
	service  TrashUseCases
	location *time.Location
}

// NewTrashHandler creates a TrashHandler. Date filters are read as calendar
// days in loc.
func NewTrashHandler(service TrashUseCases, loc *time.Location) *TrashHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TrashHandler{service: service, location: loc}
}

// RegisterRoutes mounts one route set per category slug
func (h *TrashHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, d := range trash.Descriptors() {
		g := rg.Group("/" + d.Slug)
		g.GET("/", h.ListActive(d.Category))
		g.GET("/papelera/", h.ListTrash(d.Category))
		g.DELETE("/:id/", h.SoftDelete(d.Category))
		g.POST("/:id/restaurar/", h.Restore(d.Category))
	}
}

type recordURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type trashQuery struct {
	Search      string `form:"search" binding:"max=200"`
	FechaInicio string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
}

// ListActive godoc
// @Summary      List active records
// @Description  Records of the category that are not in the trash
// @Tags         registros
// @Produce      json
// @Param        categoria path string true "Category slug" Enums(productos, clientes, proveedores, ventas, compras)
// @Success      200 {object} RecordListResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /{categoria}/ [get]
func (h *TrashHandler) ListActive(category trash.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.service.ListActive(c.Request.Context(), middleware.GetPrincipal(c), category)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewListResponse(records))
	}
}

// ListTrash godoc
// @Summary      List the trash
// @Description  Soft-deleted records of the category, newest deletion first.
// @Description  search matches the category's text fields; the date range is inclusive.
// @Tags         papelera
// @Produce      json
// @Param        categoria    path  string true  "Category slug" Enums(productos, clientes, proveedores, ventas, compras)
// @Param        search       query string false "Case-insensitive text search"
// @Param        fecha_inicio query string false "First day, YYYY-MM-DD"
// @Param        fecha_fin    query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} RecordListResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /{categoria}/papelera/ [get]
func (h *TrashHandler) ListTrash(category trash.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q trashQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		req := apptrash.ListTrashRequest{Search: q.Search}
		var err error
		if req.From, err = h.parseDay(q.FechaInicio); err != nil {
			h.BadRequest(c, "fecha_inicio must be YYYY-MM-DD")
			return
		}
		if req.To, err = h.parseDay(q.FechaFin); err != nil {
			h.BadRequest(c, "fecha_fin must be YYYY-MM-DD")
			return
		}

		records, err := h.service.ListTrash(c.Request.Context(), middleware.GetPrincipal(c), category, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewListResponse(records))
	}
}

func (h *TrashHandler) parseDay(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, v, h.location)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SoftDelete godoc
// @Summary      Move a record to the trash
// @Tags         registros
// @Produce      json
// @Param        categoria path string true "Category slug" Enums(productos, clientes, proveedores, ventas, compras)
// @Param        id        path int    true "Record ID"
// @Success      200 {object} RecordEnvelope
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "ALREADY_DELETED"
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /{categoria}/{id}/ [delete]
func (h *TrashHandler) SoftDelete(category trash.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri recordURI
		if err := c.ShouldBindUri(&uri); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		record, err := h.service.SoftDelete(c.Request.Context(), middleware.GetPrincipal(c), category, uri.ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, record)
	}
}

// Restore godoc
// @Summary      Restore a record from the trash
// @Description  Restores the record when no active record shares its identity (200).
// @Description  Otherwise a pending conflict is recorded and 202 returns its conflict_id.
// @Description  Resending the request returns the same pending conflict.
// @Tags         papelera
// @Produce      json
// @Param        categoria path string true "Category slug" Enums(productos, clientes, proveedores, ventas, compras)
// @Param        id        path int    true "Record ID"
// @Success      200 {object} RestoreEnvelope
// @Success      202 {object} RestoreEnvelope
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "ALREADY_ACTIVE, ALREADY_RESOLVED or CONCURRENCY_CONFLICT"
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /{categoria}/{id}/restaurar/ [post]
func (h *TrashHandler) Restore(category trash.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri recordURI
		if err := c.ShouldBindUri(&uri); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		result, err := h.service.Restore(c.Request.Context(), middleware.GetPrincipal(c), category, uri.ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if !result.Restored {
			h.Accepted(c, result)
			return
		}
		h.Success(c, result)
	}
}
