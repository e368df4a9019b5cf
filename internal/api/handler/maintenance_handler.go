package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	service ports.MaintenanceService
}

func NewMaintenanceHandler(service ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// Create registers a maintenance record against existing equipment.
//
// @Summary      Create a maintenance record
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      maintenanceRequest  true  "Maintenance details"
// @Success      201   {object}  domain.Maintenance
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /mantenimientos [post]
func (h *MaintenanceHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
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

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityMaintenance, domain.ActivityCreated).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get returns one record with equipment, group, and attachment download URLs.
//
// @Summary      Get a maintenance record by id
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Maintenance id"
// @Success      200 {object}  ports.MaintenanceDetail
// @Failure      404 {object}  map[string]string
// @Router       /mantenimientos/{id} [get]
func (h *MaintenanceHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// List returns all records, date descending, with equipment resolved.
//
// @Summary      List maintenance records
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.MaintenanceListItem
// @Router       /mantenimientos [get]
func (h *MaintenanceHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []ports.MaintenanceListItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// ListByEquipment returns the maintenance history of one piece of equipment.
//
// @Summary      List maintenance records for equipment
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "Equipment id"
// @Success      200 {array}  domain.Maintenance
// @Failure      404 {object} map[string]string
// @Router       /mantenimientos/by-equipo/{id} [get]
func (h *MaintenanceHandler) ListByEquipment(c echo.Context) error {
	records, err := h.service.ListByEquipment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.Maintenance{}
	}
	return c.JSON(http.StatusOK, records)
}

// Update modifies a record created by the caller (or any, for admins).
//
// @Summary      Update a maintenance record
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Maintenance id"
// @Param        body  body      maintenanceRequest  true  "Maintenance details"
// @Success      200   {object}  domain.Maintenance
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /mantenimientos/{id} [put]
func (h *MaintenanceHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
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

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityMaintenance, domain.ActivityUpdated).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a record along with its attachments.
//
// @Summary      Delete a maintenance record
// @Tags         maintenance
// @Security     BearerAuth
// @Param        id  path  string  true  "Maintenance id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /mantenimientos/{id} [delete]
func (h *MaintenanceHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsMutatedTotal.WithLabelValues(domain.EntityMaintenance, domain.ActivityDeleted).Inc()
	return c.NoContent(http.StatusNoContent)
}
