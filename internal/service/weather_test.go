package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	mock_service "github.com/DanRulev/flashbot.git/internal/service/mock"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newWeatherServiceMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_service.MockAPII)) *WeatherS {
	api := mock_service.NewMockAPII(ctrl)
	if setupMock != nil {
		setupMock(api)
	}

	return NewWeatherService(api, zap.NewNop())
}

func currentResponse() models.OWMCurrentResponse {
	resp := models.OWMCurrentResponse{
		Name:    "Kyiv",
		Dt:      1700000000,
		Main:    models.OWMMain{Temp: 3.5, FeelsLike: 1.2, Pressure: 1012, Humidity: 80},
		Weather: []models.OWMCondition{{Description: "хмарно"}},
		Wind:    models.OWMWind{Speed: 4.1},
	}
	resp.Sys.Country = "UA"
	return resp
}

func forecastResponse() models.OWMForecastResponse {
	var resp models.OWMForecastResponse
	resp.City.Name = "Kyiv"
	resp.City.Country = "UA"
	resp.City.Timezone = 7200
	for i, temp := range []float64{3.5, 5, 6.5} {
		item := struct {
			Dt      int64                 `json:"dt"`
			Main    models.OWMMain        `json:"main"`
			Weather []models.OWMCondition `json:"weather"`
			Wind    models.OWMWind        `json:"wind"`
			Pop     float64               `json:"pop"`
		}{
			Dt:      1700000000 + int64(i)*10800,
			Main:    models.OWMMain{Temp: temp, Humidity: 70},
			Weather: []models.OWMCondition{{Description: "ясно"}},
			Wind:    models.OWMWind{Speed: 2},
		}
		resp.List = append(resp.List, item)
	}
	return resp
}

func TestWeatherS_Current(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		city    string
		f       func(*mock_service.MockAPII)
		want    models.CurrentWeather
		wantErr error
	}{
		{
			name: "success",
			city: " Kyiv ",
			f: func(ma *mock_service.MockAPII) {
				ma.EXPECT().CurrentWeather(gomock.Any(), "Kyiv").Return(currentResponse(), nil)
			},
			want: models.CurrentWeather{
				City:        "Kyiv",
				Country:     "UA",
				Time:        time.Unix(1700000000, 0).UTC(),
				Temp:        3.5,
				FeelsLike:   1.2,
				Humidity:    80,
				Pressure:    1012,
				WindSpeed:   4.1,
				Description: "хмарно",
			},
		},
		{
			name:    "empty city",
			city:    "  ",
			wantErr: models.ErrEmptyCity,
		},
		{
			name: "not found",
			city: "Atlantis",
			f: func(ma *mock_service.MockAPII) {
				ma.EXPECT().CurrentWeather(gomock.Any(), "Atlantis").Return(models.OWMCurrentResponse{}, models.ErrCityNotFound)
			},
			wantErr: models.ErrCityNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			weatherS := newWeatherServiceMock(t, ctrl, tt.f)

			got, err := weatherS.Current(context.Background(), tt.city)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Current() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWeatherS_Forecast(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	weatherS := newWeatherServiceMock(t, ctrl, func(ma *mock_service.MockAPII) {
		ma.EXPECT().Forecast(gomock.Any(), "Kyiv").Return(forecastResponse(), nil)
	})

	got, err := weatherS.Forecast(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, "Kyiv", got.City)
	require.Len(t, got.Points, 3)

	_, offset := got.Points[0].Time.Zone()
	assert.Equal(t, 7200, offset)
	assert.Equal(t, 3*time.Hour, got.Points[1].Time.Sub(got.Points[0].Time))
	assert.InDelta(t, 6.5, got.Points[2].Temp, 0.001)
	assert.Equal(t, "ясно", got.Points[2].Description)
}

func TestWeatherS_ReportText(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		weatherS := newWeatherServiceMock(t, ctrl, func(ma *mock_service.MockAPII) {
			ma.EXPECT().CurrentWeather(gomock.Any(), "Kyiv").Return(currentResponse(), nil)
			ma.EXPECT().Forecast(gomock.Any(), "Kyiv").Return(forecastResponse(), nil)
		})

		got, err := weatherS.ReportText(context.Background(), "Kyiv")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "🌍 *Kyiv*, UA\n\n"))
		assert.Contains(t, got, "🌡 Температура: 3.5°C (відчувається як 1.2°C)")
		assert.Contains(t, got, "📅 *Прогноз*")
		assert.Contains(t, got, "```")
		assert.Contains(t, got, "ясно")
	})

	t.Run("one request fails", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		weatherS := newWeatherServiceMock(t, ctrl, func(ma *mock_service.MockAPII) {
			ma.EXPECT().CurrentWeather(gomock.Any(), "Kyiv").Return(currentResponse(), nil).AnyTimes()
			ma.EXPECT().Forecast(gomock.Any(), "Kyiv").Return(models.OWMForecastResponse{}, errors.New("timeout"))
		})

		_, err := weatherS.ReportText(context.Background(), "Kyiv")
		require.Error(t, err)
		assert.Equal(t, "timeout", err.Error())
	})
}

func TestBoldMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "Kyiv", want: "*Kyiv*"},
		{text: "New_York", want: "*New*\\_*York*"},
		{text: "_a*", want: "\\_*a*\\*"},
		{text: "Біла Церква", want: "*Біла Церква*"},
		{text: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, boldMarkdown(tt.text))
		})
	}

	got := formatReport(models.WeatherReport{Current: models.CurrentWeather{City: "San_Jose", Country: "US"}})
	assert.True(t, strings.HasPrefix(got, "🌍 *San*\\_*Jose*, US\n\n"))
}

func TestForecastTable(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("", 0)
	forecast := models.Forecast{Points: []models.ForecastPoint{
		{Time: time.Date(2024, 5, 1, 12, 0, 0, 0, loc), Temp: 21.3, Humidity: 40, Description: "ясно"},
		{Time: time.Date(2024, 5, 1, 15, 0, 0, 0, loc), Temp: -3, Humidity: 90, Description: "сніг"},
		{Time: time.Date(2024, 5, 1, 18, 0, 0, 0, loc), Temp: 0, Humidity: 50, Description: "хмарно"},
	}}

	got := ForecastTable(forecast, 2)
	lines := strings.Split(got, "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "```", lines[0])
	assert.Contains(t, lines[2], "01.05 12:00")
	assert.Contains(t, lines[2], "21.3")
	assert.Contains(t, lines[3], "-3.0")
	assert.Equal(t, "```", lines[4])
	assert.NotContains(t, got, "хмарно")
}

func TestWeatherS_ForecastChart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	weatherS := newWeatherServiceMock(t, ctrl, func(ma *mock_service.MockAPII) {
		ma.EXPECT().Forecast(gomock.Any(), "Kyiv").Return(forecastResponse(), nil)
		ma.EXPECT().Forecast(gomock.Any(), "Nowhere").Return(models.OWMForecastResponse{}, nil)
	})

	data, err := weatherS.ForecastChart(context.Background(), "Kyiv")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(forecastSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Температура, °C", rows[0][1])
	assert.Equal(t, "6.5", rows[3][1])

	_, err = weatherS.ForecastChart(context.Background(), "Nowhere")
	require.Error(t, err)
}
