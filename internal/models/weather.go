package models

import "time"

type OWMCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type OWMMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type OWMWind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// OWMCurrentResponse is the body of /data/2.5/weather.
type OWMCurrentResponse struct {
	Name    string         `json:"name"`
	Dt      int64          `json:"dt"`
	Main    OWMMain        `json:"main"`
	Weather []OWMCondition `json:"weather"`
	Wind    OWMWind        `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// OWMForecastResponse is the body of /data/2.5/forecast (5 days, 3 hour step).
type OWMForecastResponse struct {
	List []struct {
		Dt      int64          `json:"dt"`
		Main    OWMMain        `json:"main"`
		Weather []OWMCondition `json:"weather"`
		Wind    OWMWind        `json:"wind"`
		Pop     float64        `json:"pop"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// OWMError is returned by the API with any non-200 status.
type OWMError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

type CurrentWeather struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
}

type ForecastPoint struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Pop         float64   `json:"pop"`
	Description string    `json:"description"`
}

type Forecast struct {
	City    string          `json:"city"`
	Country string          `json:"country"`
	Points  []ForecastPoint `json:"points"`
}

type WeatherReport struct {
	Current  CurrentWeather `json:"current"`
	Forecast Forecast       `json:"forecast"`
}
