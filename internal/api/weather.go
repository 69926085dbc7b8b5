package api

import (
	"context"
	"net/http"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/gin-gonic/gin"
)

type WeatherSI interface {
	Current(ctx context.Context, city string) (models.CurrentWeather, error)
	Forecast(ctx context.Context, city string) (models.Forecast, error)
	ForecastChart(ctx context.Context, city string) ([]byte, error)
}

// GetWeather handles GET /api/weather/:city
func (h *Handler) GetWeather(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context(), c.Param("city"))
	if err != nil {
		h.fail(c, "failed to get weather", err)
		return
	}
	c.JSON(http.StatusOK, current)
}

// GetForecast handles GET /api/weather/:city/forecast
func (h *Handler) GetForecast(c *gin.Context) {
	forecast, err := h.service.Forecast(c.Request.Context(), c.Param("city"))
	if err != nil {
		h.fail(c, "failed to get forecast", err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// GetForecastChart handles GET /api/weather/:city/forecast/chart
func (h *Handler) GetForecastChart(c *gin.Context) {
	data, err := h.service.ForecastChart(c.Request.Context(), c.Param("city"))
	if err != nil {
		h.fail(c, "failed to build forecast chart", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="forecast.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
