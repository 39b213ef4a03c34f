package handler

import (
	"context"
	"net/http"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/interfaces/http/dto"
	"github.com/erp/papelera/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConflictUseCases is the application surface the conflict endpoints call
type ConflictUseCases interface {
	List(ctx context.Context, p apptrash.Principal, req apptrash.ListConflictsRequest) ([]apptrash.ConflictResponse, error)
	Get(ctx context.Context, p apptrash.Principal, id uuid.UUID) (*apptrash.ConflictResponse, error)
	Resolve(ctx context.Context, p apptrash.Principal, id uuid.UUID, req apptrash.ResolveConflictRequest) (*apptrash.ConflictResponse, error)
}

// ConflictHandler serves /conflictos
type ConflictHandler struct {
	BaseHandler
	service ConflictUseCases
}

// NewConflictHandler creates a ConflictHandler
func NewConflictHandler(service ConflictUseCases) *ConflictHandler {
	return &ConflictHandler{service: service}
}

// RegisterRoutes mounts the conflict routes
func (h *ConflictHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/conflictos")
	g.GET("/", h.List)
	g.GET("/:id/", h.Get)
	g.POST("/:id/resolver/", h.Resolve)
}

type conflictURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func (u conflictURI) uuid() uuid.UUID {
	// validated by binding
	return uuid.MustParse(u.ID)
}

// List godoc
// @Summary      List conflicts
// @Description  Pending conflicts by default; estado=TODOS lists every state
// @Tags         conflictos
// @Produce      json
// @Param        estado      query string false "State filter" Enums(PENDIENTE, RESUELTO_RESTAURAR, RESUELTO_IGNORAR, TODOS)
// @Param        tipo_modelo query string false "Category code or slug"
// @Success      200 {object} ConflictListResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /conflictos/ [get]
func (h *ConflictHandler) List(c *gin.Context) {
	var req apptrash.ListConflictsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	conflicts, err := h.service.List(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(conflicts))
}

// Get godoc
// @Summary      Get a conflict
// @Tags         conflictos
// @Produce      json
// @Param        id path string true "Conflict ID" format(uuid)
// @Success      200 {object} ConflictEnvelope
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /conflictos/{id}/ [get]
func (h *ConflictHandler) Get(c *gin.Context) {
	var uri conflictURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	conflict, err := h.service.Get(c.Request.Context(), middleware.GetPrincipal(c), uri.uuid())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, conflict)
}

// Resolve godoc
// @Summary      Resolve a conflict
// @Description  RESTAURAR restores the deleted record if nothing active collides any more;
// @Description  IGNORAR closes the conflict and leaves the record in the trash.
// @Tags         conflictos
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Conflict ID" format(uuid)
// @Param        request body apptrash.ResolveConflictRequest true "Decision"
// @Success      200 {object} ConflictEnvelope
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "ALREADY_RESOLVED or STILL_CONFLICTING"
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /conflictos/{id}/resolver/ [post]
func (h *ConflictHandler) Resolve(c *gin.Context) {
	var uri conflictURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	var req apptrash.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	conflict, err := h.service.Resolve(c.Request.Context(), middleware.GetPrincipal(c), uri.uuid(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, conflict)
}
