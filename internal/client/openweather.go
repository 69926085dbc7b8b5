package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanRulev/flashbot.git/internal/models"
)

// ErrUpstream marks failures of the weather service itself.
var ErrUpstream = errors.New("weather service error")

type OpenWeatherAPI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	units   string
	lang    string
}

func NewOpenWeatherAPI(client *http.Client, baseURL, apiKey, units, lang string) *OpenWeatherAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenWeatherAPI{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		units:   units,
		lang:    lang,
	}
}

func (o *OpenWeatherAPI) CurrentWeather(ctx context.Context, city string) (models.OWMCurrentResponse, error) {
	var result models.OWMCurrentResponse
	if err := o.get(ctx, "/data/2.5/weather", city, &result); err != nil {
		return models.OWMCurrentResponse{}, err
	}
	return result, nil
}

func (o *OpenWeatherAPI) Forecast(ctx context.Context, city string) (models.OWMForecastResponse, error) {
	var result models.OWMForecastResponse
	if err := o.get(ctx, "/data/2.5/forecast", city, &result); err != nil {
		return models.OWMForecastResponse{}, err
	}
	return result, nil
}

func (o *OpenWeatherAPI) get(ctx context.Context, path, city string, dest any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", o.apiKey)
	if o.units != "" {
		q.Set("units", o.units)
	}
	if o.lang != "" {
		q.Set("lang", o.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp, city)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response for %q: %v", ErrUpstream, city, err)
	}

	return nil
}

func decodeError(resp *http.Response, city string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr models.OWMError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", models.ErrCityNotFound, city)
	}
	return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, msg)
}
