package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// EquipmentHandler handles HTTP requests for equipment operations.
type EquipmentHandler struct {
	service ports.EquipmentService
}

func NewEquipmentHandler(service ports.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// Create registers a new piece of equipment owned by the caller.
//
// @Summary      Create equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      equipmentRequest  true  "Equipment details"
// @Success      201   {object}  domain.Equipment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /equipos [post]
func (h *EquipmentHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityEquipment, domain.ActivityCreated).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get returns one piece of equipment with its group and maintenance history.
//
// @Summary      Get equipment by id
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Equipment id"
// @Success      200 {object}  ports.EquipmentDetail
// @Failure      404 {object}  map[string]string
// @Router       /equipos/{id} [get]
func (h *EquipmentHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// List returns all equipment with groups resolved.
//
// @Summary      List equipment
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.EquipmentListItem
// @Router       /equipos [get]
func (h *EquipmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []ports.EquipmentListItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// Update modifies equipment owned by the caller (or any, for admins).
//
// @Summary      Update equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Equipment id"
// @Param        body  body      equipmentRequest  true  "Equipment details"
// @Success      200   {object}  domain.Equipment
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /equipos/{id} [put]
func (h *EquipmentHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityEquipment, domain.ActivityUpdated).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes equipment owned by the caller (or any, for admins).
//
// @Summary      Delete equipment
// @Tags         equipment
// @Security     BearerAuth
// @Param        id  path  string  true  "Equipment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /equipos/{id} [delete]
func (h *EquipmentHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityEquipment, domain.ActivityDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}
