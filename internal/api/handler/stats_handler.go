package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// StatsHandler serves the read-only reporting endpoints. Out-of-range query
// parameters are clamped by the service, never rejected.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type totalResponse struct {
	Total int64 `json:"total"`
}

// intQuery parses a query parameter, returning 0 when absent or malformed;
// the service substitutes its default.
func intQuery(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

// TotalEquipment returns the equipment count.
//
// @Summary      Total equipment count
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  totalResponse
// @Router       /stats/total-equipos [get]
func (h *StatsHandler) TotalEquipment(c echo.Context) error {
	total, err := h.service.TotalEquipment(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totalResponse{Total: total})
}

// TotalMaintenance returns the maintenance record count.
//
// @Summary      Total maintenance count
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  totalResponse
// @Router       /stats/total-mantenimientos [get]
func (h *StatsHandler) TotalMaintenance(c echo.Context) error {
	total, err := h.service.TotalMaintenance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totalResponse{Total: total})
}

// TopCreators returns the users who created the most maintenance records.
//
// @Summary      Top maintenance creators
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Rows to return (1-50, default 5)"
// @Success      200    {array}  ports.CreatorStat
// @Router       /stats/top-creators [get]
func (h *StatsHandler) TopCreators(c echo.Context) error {
	stats, err := h.service.TopCreators(c.Request().Context(), intQuery(c, "limit"))
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []ports.CreatorStat{}
	}
	return c.JSON(http.StatusOK, stats)
}

// MaintenanceTrend returns one bucket per day over the requested window.
//
// @Summary      Maintenance per-day trend
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        days  query    int  false  "Window in days (1-180, default 30)"
// @Success      200   {array}  ports.TrendBucket
// @Router       /stats/maintenances-trend [get]
func (h *StatsHandler) MaintenanceTrend(c echo.Context) error {
	days := intQuery(c, "days")
	if days == 0 {
		days = 30
	}
	buckets, err := h.service.MaintenanceTrend(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, buckets)
}

// LatestMaintenance returns the most recent maintenance records.
//
// @Summary      Latest maintenance records
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Rows to return (1-50, default 5)"
// @Success      200    {array}  ports.LatestMaintenanceItem
// @Router       /stats/latest-maintenance [get]
func (h *StatsHandler) LatestMaintenance(c echo.Context) error {
	items, err := h.service.LatestMaintenance(c.Request().Context(), intQuery(c, "limit"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []ports.LatestMaintenanceItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// LatestEquipment returns the most recently created equipment.
//
// @Summary      Latest equipment
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Rows to return (1-50, default 5)"
// @Success      200    {array}  ports.LatestEquipmentItem
// @Router       /stats/latest-equipos [get]
func (h *StatsHandler) LatestEquipment(c echo.Context) error {
	items, err := h.service.LatestEquipment(c.Request().Context(), intQuery(c, "limit"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []ports.LatestEquipmentItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// EquipmentByStatus returns the equipment status breakdown.
//
// @Summary      Equipment count by status
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.StatusCount
// @Router       /stats/equipment-by-status [get]
func (h *StatsHandler) EquipmentByStatus(c echo.Context) error {
	counts, err := h.service.EquipmentByStatus(c.Request().Context())
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []ports.StatusCount{}
	}
	return c.JSON(http.StatusOK, counts)
}

// MaintenanceByStatus returns the maintenance status breakdown.
//
// @Summary      Maintenance count by status
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.StatusCount
// @Router       /stats/maintenance-by-status [get]
func (h *StatsHandler) MaintenanceByStatus(c echo.Context) error {
	counts, err := h.service.MaintenanceByStatus(c.Request().Context())
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []ports.StatusCount{}
	}
	return c.JSON(http.StatusOK, counts)
}

// RecentActivity returns the newest audit feed entries.
//
// @Summary      Recent activity feed
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Rows to return (1-50, default 5)"
// @Success      200    {array}  domain.Activity
// @Router       /stats/recent-activity [get]
func (h *StatsHandler) RecentActivity(c echo.Context) error {
	entries, err := h.service.RecentActivity(c.Request().Context(), intQuery(c, "limit"))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.Activity{}
	}
	return c.JSON(http.StatusOK, entries)
}
