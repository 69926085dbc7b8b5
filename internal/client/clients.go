package client

import (
	"net/http"

	"github.com/DanRulev/flashbot.git/internal/config"
)

type Clients struct {
	*OpenWeatherAPI
}

func InitClients(cfg config.WeatherConfig) Clients {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return Clients{
		OpenWeatherAPI: NewOpenWeatherAPI(httpClient, cfg.BaseURL, cfg.APIKey, cfg.Units, cfg.Lang),
	}
}
