package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type CardSI interface {
	AddCard(ctx context.Context, userID int64, draft models.CardDraft) (models.Flashcard, error)
	CardsText(ctx context.Context, userID int64, category string, page int) (string, bool, error)
	Categories(ctx context.Context, userID int64) ([]string, error)
	ExportCards(ctx context.Context, userID int64) ([]byte, error)
}

const (
	textTerm            = "Термін:"
	textTranslation     = "Переклад:"
	textCategory        = "Категорія:"
	textCardAdded       = "✅ Картку додано!"
	textCardFailed      = "❌ Не вдалося зберегти картку. Спробуйте пізніше."
	textNoCardsView     = "⚠️ Додайте картку перед переглядом."
	textLoadFailed      = "❌ Помилка завантаження карток"
	textChooseCategory  = "Виберіть категорію:"
	textAllCategories   = "Всі"
	textCategoryMissing = "⚠️ Категорію не знайдено, відкрийте список ще раз."
	textExportFailed    = "❌ Не вдалося підготувати файл"
	textPageInvalid     = "❌ Помилка: невірний номер сторінки."
	textPrevPage        = "◀️ Назад"
	textNextPage        = "Далі ▶️"
)

type CardT struct {
	bot      BotSender
	sessions *sessions
	service  CardSI
	timeout  time.Duration
	log      *zap.Logger
}

func NewCardTAPI(bot BotSender, sessions *sessions, service CardSI, timeout time.Duration, log *zap.Logger) *CardT {
	return &CardT{
		bot:      bot,
		sessions: sessions,
		service:  service,
		timeout:  timeout,
		log:      log,
	}
}

func (t *CardT) startAddCard(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	session := t.sessions.get(ctx, userID)
	session.State = models.StateCardTerm
	session.Draft = models.CardDraft{}
	session.Quiz = nil
	t.sessions.set(ctx, userID, session)

	sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textTerm))
}

// handleCardInput fills the draft one field per message. Empty input asks
// for the same field again.
func (t *CardT) handleCardInput(message *tgbotapi.Message, userID int64, session models.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	text := strings.TrimSpace(message.Text)

	var prompt string
	switch session.State {
	case models.StateCardTerm:
		prompt = textTerm
		if text != "" {
			session.Draft.Term = text
			session.State = models.StateCardTranslation
			prompt = textTranslation
		}
	case models.StateCardTranslation:
		prompt = textTranslation
		if text != "" {
			session.Draft.Translation = text
			session.State = models.StateCardCategory
			prompt = textCategory
		}
	case models.StateCardCategory:
		prompt = textCategory
		if text != "" {
			session.Draft.Category = text
			t.saveCard(ctx, message, userID, session)
			return
		}
	default:
		return
	}

	t.sessions.set(ctx, userID, session)

	msg := tgbotapi.NewMessage(message.Chat.ID, prompt)
	if session.State == models.StateCardCategory {
		if keyboard := t.categoryReplyKeyboard(ctx, userID); keyboard != nil {
			msg.ReplyMarkup = keyboard
		}
	}
	sendMessage(t.bot, t.log, msg)
}

func (t *CardT) saveCard(ctx context.Context, message *tgbotapi.Message, userID int64, session models.Session) {
	_, err := t.service.AddCard(ctx, userID, session.Draft)

	session.State = models.StateIdle
	session.Draft = models.CardDraft{}
	t.sessions.set(ctx, userID, session)

	text := textCardAdded
	if err != nil {
		t.log.Error("failed to add card", zap.Int64("user_id", userID), zap.Error(err))
		text = textCardFailed
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = generateMenuKeyboard()
	sendMessage(t.bot, t.log, msg)
}

// categoryReplyKeyboard offers the existing categories as one-tap answers.
func (t *CardT) categoryReplyKeyboard(ctx context.Context, userID int64) *tgbotapi.ReplyKeyboardMarkup {
	categories, err := t.service.Categories(ctx, userID)
	if err != nil || len(categories) == 0 {
		return nil
	}

	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(categories[i])}
		if i+1 < len(categories) {
			row = append(row, tgbotapi.NewKeyboardButton(categories[i+1]))
		}
		rows = append(rows, row)
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return &keyboard
}

// showAllCards lists the whole deck and clears the category filter, so Study
// under the list quizzes every card.
func (t *CardT) showAllCards(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	text, hasNext, err := t.service.CardsText(ctx, userID, "", 0)
	if err != nil {
		t.sendCardsError(message.Chat.ID, userID, err)
		return
	}

	session := t.sessions.get(ctx, userID)
	session.Category = ""
	t.sessions.set(ctx, userID, session)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "markdown"
	msg.ReplyMarkup = cardsKeyboard("", 0, hasNext)
	sendMessage(t.bot, t.log, msg)
}

func (t *CardT) showCategories(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	categories, err := t.service.Categories(ctx, userID)
	if err != nil {
		t.sendCardsError(message.Chat.ID, userID, err)
		return
	}
	if len(categories) == 0 {
		t.sendCardsError(message.Chat.ID, userID, models.ErrNoCards)
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, textChooseCategory)
	msg.ReplyMarkup = categoryKeyboard(categories)
	sendMessage(t.bot, t.log, msg)
}

func categoryKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(textAllCategories, callbackCategoryAll),
	})

	row := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	for i, category := range categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(category, categoryCallback(i, category)))
		if len(row) == 2 {
			buttons = append(buttons, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 2)
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// categoryCallback carries the category name. Names that do not fit into
// callback data are keyed by position and resolved through the button label.
func categoryCallback(idx int, category string) string {
	if data := callbackCategory + category; len(data) <= callbackDataLimit {
		return data
	}
	return callbackCategoryIndex + strconv.Itoa(idx)
}

// pageCallback addresses a list page. A category too long for callback data
// is taken from the session instead.
func pageCallback(category string, page int) string {
	if category == "" {
		return callbackPage + strconv.Itoa(page)
	}
	if data := fmt.Sprintf("%s%d:%s", callbackPage, page, category); len(data) <= callbackDataLimit {
		return data
	}
	return callbackPageSession + strconv.Itoa(page)
}

func cardsKeyboard(category string, page int, hasNext bool) *tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	row := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(textPrevPage, pageCallback(category, page-1)))
	}
	if hasNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(textNextPage, pageCallback(category, page+1)))
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(ButtonStudy, callbackNextCard),
		tgbotapi.NewInlineKeyboardButtonData(ButtonMainMenu, callbackMainMenu),
	})

	return &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

func (t *CardT) handleCategoryCallback(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	var category string
	switch {
	case query.Data == callbackCategoryAll:
	case strings.HasPrefix(query.Data, callbackCategory):
		category = strings.TrimPrefix(query.Data, callbackCategory)
	default:
		label, ok := buttonLabel(query.Message.ReplyMarkup, query.Data)
		if !ok {
			sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, textCategoryMissing))
			return
		}

		categories, err := t.service.Categories(ctx, userID)
		if err != nil {
			t.sendCardsError(chatID, userID, err)
			return
		}
		if !slices.Contains(categories, label) {
			sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, textCategoryMissing))
			return
		}
		category = label
	}

	t.editCardsPage(ctx, query, category, 0)
}

// buttonLabel finds the text of the button that sent data.
func buttonLabel(markup *tgbotapi.InlineKeyboardMarkup, data string) (string, bool) {
	if markup == nil {
		return "", false
	}
	for _, row := range markup.InlineKeyboard {
		for _, button := range row {
			if button.CallbackData != nil && *button.CallbackData == data {
				return button.Text, true
			}
		}
	}
	return "", false
}

func (t *CardT) handlePageCallback(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	var (
		pageStr  string
		category string
	)
	if rest, ok := strings.CutPrefix(query.Data, callbackPageSession); ok {
		pageStr = rest
		category = t.sessions.get(ctx, query.From.ID).Category
	} else {
		pageStr, category, _ = strings.Cut(strings.TrimPrefix(query.Data, callbackPage), ":")
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(query.Message.Chat.ID, textPageInvalid))
		return
	}

	t.editCardsPage(ctx, query, category, page)
}

// editCardsPage replaces the message with a page of cards and scopes Study to
// the listed category.
func (t *CardT) editCardsPage(ctx context.Context, query *tgbotapi.CallbackQuery, category string, page int) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID

	text, hasNext, err := t.service.CardsText(ctx, userID, category, page)
	if err != nil {
		t.sendCardsError(chatID, userID, err)
		return
	}

	session := t.sessions.get(ctx, userID)
	session.Category = category
	t.sessions.set(ctx, userID, session)

	editMsg := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, text)
	editMsg.ParseMode = "markdown"
	editMsg.ReplyMarkup = cardsKeyboard(category, page, hasNext)
	sendMessage(t.bot, t.log, editMsg)
}

func (t *CardT) exportCards(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	data, err := t.service.ExportCards(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNoCards) {
			t.sendCardsError(message.Chat.ID, userID, err)
			return
		}
		t.log.Error("failed to export cards", zap.Int64("user_id", userID), zap.Error(err))
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textExportFailed))
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("flashcards-%d.xlsx", userID),
		Bytes: data,
	})
	doc.Caption = "📤 Ваші картки"
	sendMessage(t.bot, t.log, doc)
}

func (t *CardT) sendCardsError(chatID, userID int64, err error) {
	text := textLoadFailed
	if errors.Is(err, models.ErrNoCards) {
		text = textNoCardsView
	} else {
		t.log.Error("failed to load cards", zap.Int64("user_id", userID), zap.Error(err))
	}
	sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, text))
}
