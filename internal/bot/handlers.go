package bot

import (
	"context"
	"strings"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	ButtonAddCard    = "➕ Додати картку"
	ButtonStudy      = "🧠 Вивчати картки"
	ButtonAllCards   = "📚 Переглянути всі картки"
	ButtonCategories = "🗂 Вибрати за категорією"
	ButtonStats      = "📊 Статистика"
	ButtonWeather    = "🌦 Погода"
	ButtonExport     = "📤 Експорт карток"
	ButtonHelp       = "ℹ️ Допомога"
	ButtonMainMenu   = "🏠 Головне меню"
)

const (
	callbackNextCard      = "next_card"
	callbackCategoryAll   = "cat_all"
	callbackCategory      = "cat:"
	callbackCategoryIndex = "cat#"
	callbackPage          = "pg:"
	callbackPageSession   = "pgs:"
	callbackWeatherChart  = "weather_chart"
	callbackMainMenu      = "main_menu"
)

// callbackDataLimit is the Telegram limit for inline button data, in bytes.
const callbackDataLimit = 64

const (
	textUnknownCommand = "Невідома команда. Використайте /start"
	textNotUnderstood  = "Я не зрозумів. Використайте кнопки нижче."
	textMainMenu       = "🏠 Головне меню:"
)

func (t *TelegramAPI) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		t.handleStartCommand(message)
	case "help":
		t.handleHelpCommand(message)
	case "cancel":
		t.cancel(message)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, textUnknownCommand)
		sendMessage(t.sender, t.log, msg)
	}
}

func (t *TelegramAPI) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := "🤖 Вітаю! Це додаток з мовних карток.\n\n" +
		"✨ Що я вмію:\n" +
		"• ➕ Додавати картки: термін, переклад, категорія\n" +
		"• 🧠 Перевіряти переклад випадкової картки\n" +
		"• 🗂 Показувати картки за категорією\n" +
		"• 📊 Рахувати правильні та неправильні відповіді\n" +
		"• 🌦 Показувати погоду та прогноз\n\n" +
		"Оберіть дію кнопкою нижче!"

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = generateMenuKeyboard()

	sendMessage(t.sender, t.log, msg)
}

func (t *TelegramAPI) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, textMainMenu)
	msg.ReplyMarkup = generateMenuKeyboard()

	sendMessage(t.sender, t.log, msg)
}

func generateMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonAddCard),
			tgbotapi.NewKeyboardButton(ButtonStudy),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonAllCards),
			tgbotapi.NewKeyboardButton(ButtonCategories),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonStats),
			tgbotapi.NewKeyboardButton(ButtonWeather),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonExport),
			tgbotapi.NewKeyboardButton(ButtonHelp),
		),
	)

	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = false

	return keyboard
}

func (t *TelegramAPI) handleHelpCommand(message *tgbotapi.Message) {
	helpText := `
📚 Доступні команди:
/start — запустити бота
/help — це повідомлення
/cancel — скасувати поточну дію

🎯 Кнопки:
• "Додати картку" — термін, переклад і категорія по черзі
• "Вивчати картки" — напишіть переклад випадкової картки
• "Вибрати за категорією" — показати картки категорії та вивчати лише її
• "Статистика" — скільки відповідей правильні
• "Погода" — поточна погода, прогноз і графік
`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	sendMessage(t.sender, t.log, msg)
}

func (t *TelegramAPI) cancel(message *tgbotapi.Message) {
	if message.From != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		t.sessions.idle(ctx, message.From.ID)
	}
	t.showMainMenu(message.Chat.ID)
}

func (t *TelegramAPI) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		t.log.Warn("message without sender", zap.Int64("chat_id", message.Chat.ID))
		return
	}
	userID := message.From.ID
	text := message.Text

	switch text {
	case ButtonAddCard:
		t.card.startAddCard(message, userID)
	case ButtonStudy:
		t.quiz.sendQuestion(message.Chat.ID, userID)
	case ButtonAllCards:
		t.card.showAllCards(message, userID)
	case ButtonCategories:
		t.card.showCategories(message, userID)
	case ButtonStats:
		t.quiz.sendQuizStats(message, userID)
	case ButtonWeather:
		t.weather.askCity(message, userID)
	case ButtonExport:
		t.card.exportCards(message, userID)
	case ButtonHelp:
		t.handleHelpCommand(message)
	case ButtonMainMenu:
		t.cancel(message)
	default:
		t.handleInput(message, userID)
	}
}

// handleInput routes free text to the dialog the user is in.
func (t *TelegramAPI) handleInput(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	session := t.sessions.get(ctx, userID)
	cancel()

	switch session.State {
	case models.StateCardTerm, models.StateCardTranslation, models.StateCardCategory:
		t.card.handleCardInput(message, userID, session)
	case models.StateQuizAnswer:
		t.quiz.handleAnswer(message, userID, session)
	case models.StateWeatherCity:
		t.weather.handleCity(message, userID, session)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, textNotUnderstood)
		sendMessage(t.sender, t.log, msg)
	}
}

func (t *TelegramAPI) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(query.ID, "")
	callback.ShowAlert = false
	if _, err := t.sender.Request(callback); err != nil {
		t.log.Warn("failed to answer callback", zap.Error(err))
	}

	if query.Message == nil {
		t.log.Warn("callback query without message", zap.String("query_id", query.ID))
		return
	}

	data := query.Data

	switch {
	case data == callbackNextCard:
		t.quiz.sendQuestion(query.Message.Chat.ID, query.From.ID)
	case data == callbackCategoryAll || strings.HasPrefix(data, callbackCategory) || strings.HasPrefix(data, callbackCategoryIndex):
		t.card.handleCategoryCallback(query)
	case strings.HasPrefix(data, callbackPage) || strings.HasPrefix(data, callbackPageSession):
		t.card.handlePageCallback(query)
	case data == callbackWeatherChart || strings.HasPrefix(data, callbackWeatherChart+":"):
		t.weather.sendChart(query)
	case data == callbackMainMenu:
		t.showMainMenu(query.Message.Chat.ID)
	default:
		t.log.Warn("unknown callback data", zap.String("data", data), zap.Int64("user_id", query.From.ID))
	}
}
