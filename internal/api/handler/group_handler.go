package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// GroupHandler handles HTTP requests for equipment groups.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

// List returns the caller's groups, name ascending.
//
// @Summary      List own equipment groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.EquipmentGroup
// @Router       /grupos [get]
func (h *GroupHandler) List(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	groups, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []*domain.EquipmentGroup{}
	}
	return c.JSON(http.StatusOK, groups)
}

// Create adds a new equipment group owned by the caller.
//
// @Summary      Create an equipment group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group name"
// @Success      201   {object}  domain.EquipmentGroup
// @Failure      400   {object}  map[string]string
// @Router       /grupos [post]
func (h *GroupHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityGroup, domain.ActivityCreated).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Delete removes an empty group. A group that still has equipment assigned
// is rejected with 400.
//
// @Summary      Delete an equipment group
// @Tags         groups
// @Security     BearerAuth
// @Param        id  path  string  true  "Group id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /grupos/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityGroup, domain.ActivityDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}
