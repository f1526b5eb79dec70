package handler

import (
	"kzstore-backoffice/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// filterFromQuery parses the optional start_date / end_date / customer_id
// query params. Dates accept YYYY-MM-DD or RFC 3339.
func filterFromQuery(c echo.Context) (service.AnalyticsFilter, error) {
	filter := service.AnalyticsFilter{
		CustomerID: c.QueryParam("customer_id"),
	}

	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return &t, nil
		}
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid date: "+value)
		}
		return &t, nil
	}

	var err error
	if filter.StartDate, err = parse(c.QueryParam("start_date")); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parse(c.QueryParam("end_date")); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *AnalyticsHandler) GetCLV(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	report, err := h.analyticsService.ComputeCLV(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetConversionRate(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	report, err := h.analyticsService.ComputeConversionRate(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetRevenue(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	report, err := h.analyticsService.ComputeRevenue(ctx, filter, c.QueryParam("group_by"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetSalesFunnel(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	report, err := h.analyticsService.AnalyzeSalesFunnel(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()

	metricType := c.QueryParam("metric_type")
	if metricType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing metric_type")
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	metrics, err := h.analyticsService.HistoricalMetrics(ctx, metricType, filter, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, metrics)
}
