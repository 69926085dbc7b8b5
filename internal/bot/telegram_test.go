package bot

import (
	"context"
	"testing"
	"time"

	mock_bot "github.com/DanRulev/flashbot.git/internal/bot/mock"
	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/DanRulev/flashbot.git/internal/storage/cache"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testChatID int64 = 123
	testUserID int64 = 456
)

func newTelegramMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_bot.MockServiceI, *mock_bot.MockBot)) (*TelegramAPI, *mock_bot.MockBot, *cache.Cache) {
	t.Helper()

	mockService := mock_bot.NewMockServiceI(ctrl)
	sessionCache := cache.NewCache()
	mockBot := &mock_bot.MockBot{}

	if setupMock != nil {
		setupMock(mockService, mockBot)
	}

	return newTelegramAPI(mockBot, mockService, sessionCache, time.Second, zap.NewNop()), mockBot, sessionCache
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: testUserID},
		Text: text,
	}
}

func commandMessage(command string) *tgbotapi.Message {
	msg := textMessage("/" + command)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command) + 1}}
	return msg
}

func callbackQuery(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "q1",
		From: &tgbotapi.User{ID: testUserID},
		Message: &tgbotapi.Message{
			Chat:      &tgbotapi.Chat{ID: testChatID},
			MessageID: 100,
		},
		Data: data,
	}
}

func setSession(t *testing.T, c *cache.Cache, session models.Session) {
	t.Helper()
	require.NoError(t, c.SetSession(context.Background(), testUserID, session))
}

func getSession(t *testing.T, c *cache.Cache) models.Session {
	t.Helper()
	session, _, err := c.Session(context.Background(), testUserID)
	require.NoError(t, err)
	return session
}

func lastText(t *testing.T, mb *mock_bot.MockBot) string {
	t.Helper()
	require.NotEmpty(t, mb.SentMessages)
	msg, ok := mb.SentMessages[len(mb.SentMessages)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	return msg.Text
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	mb := &mock_bot.MockBot{SendErr: assert.AnError}
	sendMessage(mb, zap.NewNop(), tgbotapi.NewMessage(testChatID, "hi"))

	assert.Len(t, mb.SentMessages, 1)
}

func TestSessions_idle(t *testing.T) {
	t.Parallel()

	c := cache.NewCache()
	s := &sessions{cache: c, log: zap.NewNop()}
	ctx := context.Background()

	s.set(ctx, testUserID, models.Session{
		State:       models.StateCardTranslation,
		Draft:       models.CardDraft{Term: "cat"},
		Quiz:        &models.QuizCard{Term: "dog"},
		Category:    "animals",
		WeatherCity: "Kyiv",
	})
	s.idle(ctx, testUserID)

	got := s.get(ctx, testUserID)
	assert.Equal(t, models.Session{Category: "animals", WeatherCity: "Kyiv"}, got)
}
