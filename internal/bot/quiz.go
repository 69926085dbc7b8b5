package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type QuizSI interface {
	NewQuestion(ctx context.Context, userID int64, category string) (models.QuizCard, error)
	CheckAnswer(ctx context.Context, question models.QuizCard, answer string) (models.QuizCard, error)
	QuizStatsText(ctx context.Context, userID int64) (string, error)
}

const (
	textNoCardsStudy   = "⚠️ Додайте картку перед вивченням."
	textQuizFailed     = "❌ Помилка при отриманні картки. Спробуйте пізніше."
	textEnterAnswer    = "✍️ Напишіть переклад."
	textRight          = "✅ Вірно!"
	textWrongFormat    = "❌ Правильний переклад: %s"
	textNextCard       = "➡️ Наступна картка"
	textStatsFailed    = "❌ Помилка отримання статистики"
	textQuestionFormat = "❓ Як перекладається '%s'?"
)

type QuizT struct {
	bot      BotSender
	sessions *sessions
	service  QuizSI
	timeout  time.Duration
	log      *zap.Logger
}

func NewQuizTAPI(bot BotSender, sessions *sessions, service QuizSI, timeout time.Duration, log *zap.Logger) *QuizT {
	return &QuizT{
		bot:      bot,
		sessions: sessions,
		service:  service,
		timeout:  timeout,
		log:      log,
	}
}

// sendQuestion asks for the translation of a random card from the category
// the user picked last, or from all cards.
func (t *QuizT) sendQuestion(chatID, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	session := t.sessions.get(ctx, userID)

	question, err := t.service.NewQuestion(ctx, userID, session.Category)
	if err != nil {
		text := textQuizFailed
		if errors.Is(err, models.ErrNoCards) {
			text = textNoCardsStudy
		} else {
			t.log.Error("failed to get quiz question", zap.Int64("user_id", userID), zap.Error(err))
		}
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, text))
		return
	}

	session.State = models.StateQuizAnswer
	session.Quiz = &question
	t.sessions.set(ctx, userID, session)

	sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, fmt.Sprintf(textQuestionFormat, question.Term)))
}

func (t *QuizT) handleAnswer(message *tgbotapi.Message, userID int64, session models.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if session.Quiz == nil {
		t.sessions.idle(ctx, userID)
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textNotUnderstood))
		return
	}

	result, err := t.service.CheckAnswer(ctx, *session.Quiz, message.Text)
	if errors.Is(err, models.ErrEmptyAnswer) {
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textEnterAnswer))
		return
	}
	if err != nil {
		// the answer is graded, only the tally missed it
		t.log.Warn("quiz result not saved", zap.Int64("user_id", userID), zap.Error(err))
	}

	session.State = models.StateIdle
	session.Quiz = nil
	t.sessions.set(ctx, userID, session)

	text := textRight
	if !result.IsCorrect {
		text = fmt.Sprintf(textWrongFormat, result.Translation)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(textNextCard, callbackNextCard),
			tgbotapi.NewInlineKeyboardButtonData(ButtonMainMenu, callbackMainMenu),
		),
	)
	sendMessage(t.bot, t.log, msg)
}

func (t *QuizT) sendQuizStats(message *tgbotapi.Message, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	text, err := t.service.QuizStatsText(ctx, userID)
	if err != nil {
		t.log.Error("failed to get quiz stats", zap.Int64("user_id", userID), zap.Error(err))
		sendMessage(t.bot, t.log, tgbotapi.NewMessage(message.Chat.ID, textStatsFailed))
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "markdown"
	sendMessage(t.bot, t.log, msg)
}
