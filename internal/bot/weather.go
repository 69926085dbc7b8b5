package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type WeatherSI interface {
	ReportText(ctx context.Context, city string) (string, error)
	ForecastChart(ctx context.Context, city string) ([]byte, error)
}

const (
	textEnterCity      = "Введіть назву міста:"
	textCityNotFound   = "⚠️ Місто не знайдено. Спробуйте ще раз або /cancel."
	textWeatherFailed  = "❌ Не вдалося отримати погоду. Спробуйте пізніше."
	textForecastChart  = "📈 Графік прогнозу"
	textChartFailed    = "❌ Не вдалося побудувати графік"
	textChartCaption   = "📈 Прогноз: %s"
	textChartNeedsCity = "⚠️ Спочатку дізнайтеся погоду для міста."
)

type WeatherT struct {
	bot      BotSender
	sessions *sessions
	service  WeatherSI
	timeout  time.Duration
	log      *zap.Logger
}

func NewWeatherTAPI(bot BotSender, sessions *sessions, service WeatherSI, timeout time.Duration, log *zap.Logger) *WeatherT {
	return &WeatherT{
		bot:      bot,
		sessions: sessions,
		service:  service,
		timeout:  timeout,
		log:      log,
	}
}

func (t *WeatherT) askCity(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	session := t.sessions.get(ctx, userID)
	session.State = models.StateWeatherCity
	session.Draft = models.CardDraft{}
	session.Quiz = nil
	t.sessions.set(ctx, userID, session)

	sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textEnterCity))
}

// handleCity answers with the current weather and the forecast table. An
// unknown city keeps the user in the city prompt.
func (t *WeatherT) handleCity(message *tgbotapi.Message, userID int64, session models.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	city := strings.TrimSpace(message.Text)
	if city == "" {
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textEnterCity))
		return
	}

	text, err := t.service.ReportText(ctx, city)
	if err != nil {
		if errors.Is(err, models.ErrCityNotFound) {
			sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textCityNotFound))
			return
		}

		t.log.Error("failed to get weather", zap.String("city", city), zap.Error(err))
		session.State = models.StateIdle
		t.sessions.set(ctx, userID, session)
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textWeatherFailed))
		return
	}

	session.State = models.StateIdle
	session.WeatherCity = city
	t.sessions.set(ctx, userID, session)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(textForecastChart, chartCallback(city)),
			tgbotapi.NewInlineKeyboardButtonData(ButtonMainMenu, callbackMainMenu),
		),
	)
	sendMessage(t.bot, t.log, msg)
}

// chartCallback ties the chart button to the city of its report. Names too
// long for callback data fall back to the last city asked for.
func chartCallback(city string) string {
	data := callbackWeatherChart + ":" + city
	if len(data) > callbackDataLimit {
		return callbackWeatherChart
	}
	return data
}

func (t *WeatherT) sendChart(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	chatID := query.Message.Chat.ID

	city, ok := strings.CutPrefix(query.Data, callbackWeatherChart+":")
	if !ok {
		city = t.sessions.get(ctx, query.From.ID).WeatherCity
	}
	if city == "" {
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, textChartNeedsCity))
		return
	}

	data, err := t.service.ForecastChart(ctx, city)
	if err != nil {
		t.log.Error("failed to build forecast chart", zap.String("city", city), zap.Error(err))
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, textChartFailed))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "forecast.xlsx",
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf(textChartCaption, city)
	sendMessage(t.bot, t.log, doc)
}
