package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type stubStatsService struct {
	totalEquipmentFn func(ctx context.Context) (int64, error)
	topCreatorsFn    func(ctx context.Context, limit int) ([]ports.CreatorStat, error)
	trendFn          func(ctx context.Context, days int) ([]ports.TrendBucket, error)
}

func (s *stubStatsService) TotalEquipment(ctx context.Context) (int64, error) {
	return s.totalEquipmentFn(ctx)
}

func (s *stubStatsService) TotalMaintenance(context.Context) (int64, error) { return 0, nil }

func (s *stubStatsService) TopCreators(ctx context.Context, limit int) ([]ports.CreatorStat, error) {
	return s.topCreatorsFn(ctx, limit)
}

func (s *stubStatsService) MaintenanceTrend(ctx context.Context, days int) ([]ports.TrendBucket, error) {
	return s.trendFn(ctx, days)
}

func (s *stubStatsService) LatestMaintenance(context.Context, int) ([]ports.LatestMaintenanceItem, error) {
	return nil, nil
}

func (s *stubStatsService) LatestEquipment(context.Context, int) ([]ports.LatestEquipmentItem, error) {
	return nil, nil
}

func (s *stubStatsService) EquipmentByStatus(context.Context) ([]ports.StatusCount, error) {
	return nil, nil
}

func (s *stubStatsService) MaintenanceByStatus(context.Context) ([]ports.StatusCount, error) {
	return nil, nil
}

func (s *stubStatsService) RecentActivity(context.Context, int) ([]domain.Activity, error) {
	return nil, nil
}

var _ ports.StatsService = (*stubStatsService)(nil)

func statsGet(t *testing.T, h func(echo.Context) error, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestStatsHandler_TotalEquipment(t *testing.T) {
	h := NewStatsHandler(&stubStatsService{
		totalEquipmentFn: func(context.Context) (int64, error) { return 42, nil },
	})

	rec := statsGet(t, h.TotalEquipment, "/stats/total-equipos")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"total":42}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestStatsHandler_TopCreators_PassesLimit(t *testing.T) {
	var gotLimit int
	h := NewStatsHandler(&stubStatsService{
		topCreatorsFn: func(_ context.Context, limit int) ([]ports.CreatorStat, error) {
			gotLimit = limit
			return nil, nil
		},
	})

	rec := statsGet(t, h.TopCreators, "/stats/top-creators?limit=10")
	if gotLimit != 10 {
		t.Errorf("expected limit 10, got %d", gotLimit)
	}
	// A nil slice must serialize as [], not null.
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got: %s", body)
	}
}

func TestStatsHandler_TopCreators_MalformedLimitIsZero(t *testing.T) {
	var gotLimit int
	h := NewStatsHandler(&stubStatsService{
		topCreatorsFn: func(_ context.Context, limit int) ([]ports.CreatorStat, error) {
			gotLimit = limit
			return []ports.CreatorStat{}, nil
		},
	})

	statsGet(t, h.TopCreators, "/stats/top-creators?limit=abc")
	if gotLimit != 0 {
		t.Errorf("malformed limit must pass 0 for the service default, got %d", gotLimit)
	}
}

func TestStatsHandler_MaintenanceTrend_DefaultsDays(t *testing.T) {
	var gotDays int
	h := NewStatsHandler(&stubStatsService{
		trendFn: func(_ context.Context, days int) ([]ports.TrendBucket, error) {
			gotDays = days
			return []ports.TrendBucket{}, nil
		},
	})

	statsGet(t, h.MaintenanceTrend, "/stats/maintenances-trend")
	if gotDays != 30 {
		t.Errorf("absent days must default to 30, got %d", gotDays)
	}

	statsGet(t, h.MaintenanceTrend, "/stats/maintenances-trend?days=7")
	if gotDays != 7 {
		t.Errorf("expected days 7, got %d", gotDays)
	}
}
