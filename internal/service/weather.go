package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// forecastTableRows limits the text table to two days of 3 hour steps.
const forecastTableRows = 16

type WeatherS struct {
	api WeatherAPII
	log *zap.Logger
}

func NewWeatherService(api WeatherAPII, log *zap.Logger) *WeatherS {
	return &WeatherS{
		api: api,
		log: log,
	}
}

func (w *WeatherS) Current(ctx context.Context, city string) (models.CurrentWeather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.CurrentWeather{}, models.ErrEmptyCity
	}

	resp, err := w.api.CurrentWeather(ctx, city)
	if err != nil {
		w.log.Warn("failed to get current weather", zap.String("city", city), zap.Error(err))
		return models.CurrentWeather{}, err
	}

	current := models.CurrentWeather{
		City:      resp.Name,
		Country:   resp.Sys.Country,
		Time:      time.Unix(resp.Dt, 0).UTC(),
		Temp:      resp.Main.Temp,
		FeelsLike: resp.Main.FeelsLike,
		Humidity:  resp.Main.Humidity,
		Pressure:  resp.Main.Pressure,
		WindSpeed: resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		current.Description = resp.Weather[0].Description
	}

	return current, nil
}

func (w *WeatherS) Forecast(ctx context.Context, city string) (models.Forecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Forecast{}, models.ErrEmptyCity
	}

	resp, err := w.api.Forecast(ctx, city)
	if err != nil {
		w.log.Warn("failed to get forecast", zap.String("city", city), zap.Error(err))
		return models.Forecast{}, err
	}

	loc := time.FixedZone("", resp.City.Timezone)
	forecast := models.Forecast{
		City:    resp.City.Name,
		Country: resp.City.Country,
		Points:  make([]models.ForecastPoint, 0, len(resp.List)),
	}
	for _, item := range resp.List {
		point := models.ForecastPoint{
			Time:      time.Unix(item.Dt, 0).In(loc),
			Temp:      item.Main.Temp,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			Pop:       item.Pop,
		}
		if len(item.Weather) > 0 {
			point.Description = item.Weather[0].Description
		}
		forecast.Points = append(forecast.Points, point)
	}

	return forecast, nil
}

// Report fetches current conditions and the forecast in parallel.
func (w *WeatherS) Report(ctx context.Context, city string) (models.WeatherReport, error) {
	var report models.WeatherReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current, err := w.Current(gctx, city)
		report.Current = current
		return err
	})
	g.Go(func() error {
		forecast, err := w.Forecast(gctx, city)
		report.Forecast = forecast
		return err
	})

	if err := g.Wait(); err != nil {
		return models.WeatherReport{}, err
	}
	return report, nil
}

func (w *WeatherS) ReportText(ctx context.Context, city string) (string, error) {
	report, err := w.Report(ctx, city)
	if err != nil {
		return "", err
	}
	return formatReport(report), nil
}

func (w *WeatherS) ForecastChart(ctx context.Context, city string) ([]byte, error) {
	forecast, err := w.Forecast(ctx, city)
	if err != nil {
		return nil, err
	}

	data, err := forecastWorkbook(forecast)
	if err != nil {
		w.log.Error("failed to build forecast workbook", zap.String("city", city), zap.Error(err))
		return nil, err
	}
	return data, nil
}

func formatReport(report models.WeatherReport) string {
	var sb strings.Builder

	c := report.Current
	sb.WriteString("🌍 " + boldMarkdown(c.City))
	if c.Country != "" {
		sb.WriteString(", " + c.Country)
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("🌡 Температура: %.1f°C (відчувається як %.1f°C)\n", c.Temp, c.FeelsLike))
	if c.Description != "" {
		sb.WriteString("☁️ " + escapeMarkdown(c.Description) + "\n")
	}
	sb.WriteString(fmt.Sprintf("💧 Вологість: %d%%\n", c.Humidity))
	sb.WriteString(fmt.Sprintf("💨 Вітер: %.1f м/с\n", c.WindSpeed))
	sb.WriteString(fmt.Sprintf("🧭 Тиск: %d гПа", c.Pressure))

	if len(report.Forecast.Points) > 0 {
		sb.WriteString("\n\n📅 *Прогноз*\n")
		sb.WriteString(ForecastTable(report.Forecast, forecastTableRows))
	}

	return sb.String()
}

// ForecastTable renders up to limit points as a monospace table.
func ForecastTable(forecast models.Forecast, limit int) string {
	points := forecast.Points
	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	sb.WriteString(fmt.Sprintf("%-11s %6s %4s  %s\n", "Час", "°C", "%", "Опис"))
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%-11s %6.1f %4d  %s\n",
			p.Time.Format("02.01 15:04"), p.Temp, p.Humidity, p.Description))
	}
	sb.WriteString("```")

	return sb.String()
}
