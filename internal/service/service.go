package service

import (
	"context"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WeatherAPII interface {
	CurrentWeather(ctx context.Context, city string) (models.OWMCurrentResponse, error)
	Forecast(ctx context.Context, city string) (models.OWMForecastResponse, error)
}

type APII interface {
	WeatherAPII
}

type RepositoryI interface {
	CardRI
	QuizRI
}

type Service struct {
	*CardS
	*QuizS
	*WeatherS
}

func InitServices(api APII, repo RepositoryI, log *zap.Logger) *Service {
	return &Service{
		CardS:    NewCardService(repo, log),
		QuizS:    NewQuizService(repo, repo, log),
		WeatherS: NewWeatherService(api, log),
	}
}

var (
	nowFunc   = func() time.Time { return time.Now().UTC() }
	newIDFunc = uuid.NewString
)
