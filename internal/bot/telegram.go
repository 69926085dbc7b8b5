package bot

import (
	"context"
	"time"

	"github.com/DanRulev/flashbot.git/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type ServiceI interface {
	CardSI
	QuizSI
	WeatherSI
}

type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type SessionCache interface {
	SetSession(ctx context.Context, userID int64, session models.Session) error
	Session(ctx context.Context, userID int64) (models.Session, bool, error)
	DeleteSession(ctx context.Context, userID int64) error
}

type TelegramAPI struct {
	bot      *tgbotapi.BotAPI
	sender   BotSender
	sessions *sessions
	card     *CardT
	quiz     *QuizT
	weather  *WeatherT
	log      *zap.Logger
}

func NewTelegramAPI(botToken, env string, service ServiceI, cache SessionCache, timeout time.Duration, log *zap.Logger) (*TelegramAPI, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}

	bot.Debug = env == "development"

	t := newTelegramAPI(bot, service, cache, timeout, log)
	t.bot = bot
	return t, nil
}

func newTelegramAPI(sender BotSender, service ServiceI, cache SessionCache, timeout time.Duration, log *zap.Logger) *TelegramAPI {
	s := &sessions{cache: cache, log: log}
	return &TelegramAPI{
		sender:   sender,
		sessions: s,
		card:     NewCardTAPI(sender, s, service, timeout, log),
		quiz:     NewQuizTAPI(sender, s, service, timeout, log),
		weather:  NewWeatherTAPI(sender, s, service, timeout, log),
		log:      log,
	}
}

// Start polls for updates until ctx is cancelled.
func (t *TelegramAPI) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	t.log.Info("bot started", zap.String("username", t.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			t.log.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(update)
		}
	}
}

func (t *TelegramAPI) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			t.handleCommand(update.Message)
		} else {
			t.handleMessage(update.Message)
		}
		return
	}

	if update.CallbackQuery != nil {
		t.handleCallbackQuery(update.CallbackQuery)
	}
}

func sendMessage(bot BotSender, log *zap.Logger, msg tgbotapi.Chattable) {
	sentMsg, err := bot.Send(msg)
	if err != nil {
		log.Error("failed to send message", zap.Error(err))
		return
	}
	if sentMsg.Chat != nil {
		log.Debug("sent message", zap.Int64("chat_id", sentMsg.Chat.ID))
	}
}

// sessions wraps the cache so that handlers never fail on a broken cache;
// they fall back to an empty session.
type sessions struct {
	cache SessionCache
	log   *zap.Logger
}

func (s *sessions) get(ctx context.Context, userID int64) models.Session {
	session, _, err := s.cache.Session(ctx, userID)
	if err != nil {
		s.log.Warn("failed to load session", zap.Int64("user_id", userID), zap.Error(err))
		return models.Session{}
	}
	return session
}

func (s *sessions) set(ctx context.Context, userID int64, session models.Session) {
	if err := s.cache.SetSession(ctx, userID, session); err != nil {
		s.log.Warn("failed to save session", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// idle drops any half-finished dialog but keeps the user's preferences.
func (s *sessions) idle(ctx context.Context, userID int64) {
	session := s.get(ctx, userID)
	session.State = models.StateIdle
	session.Draft = models.CardDraft{}
	session.Quiz = nil
	s.set(ctx, userID, session)
}
