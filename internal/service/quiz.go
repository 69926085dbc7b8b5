package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/DanRulev/flashbot.git/internal/models"
	"go.uber.org/zap"
)

type QuizRI interface {
	AddQuizResult(ctx context.Context, result models.QuizCard) error
	QuizStats(ctx context.Context, userID int64) (models.QuizStats, error)
}

type CardPicker interface {
	Card(ctx context.Context, userID int64, cardID string) (models.Flashcard, error)
	RandomCard(ctx context.Context, userID int64, category string) (models.Flashcard, error)
}

type QuizS struct {
	repo   QuizRI
	picker CardPicker
	log    *zap.Logger
}

func NewQuizService(repo QuizRI, picker CardPicker, log *zap.Logger) *QuizS {
	return &QuizS{
		repo:   repo,
		picker: picker,
		log:    log,
	}
}

// NewQuestion picks a random card of the user, limited to category when set.
func (q *QuizS) NewQuestion(ctx context.Context, userID int64, category string) (models.QuizCard, error) {
	card, err := q.picker.RandomCard(ctx, userID, category)
	if err != nil {
		return models.QuizCard{}, err
	}

	return models.QuizCard{
		UserID:      userID,
		CardID:      card.ID,
		Term:        card.Term,
		Translation: card.Translation,
		Category:    card.Category,
	}, nil
}

// CheckAnswer grades the answer and records the outcome. The graded card is
// returned even when recording fails.
func (q *QuizS) CheckAnswer(ctx context.Context, question models.QuizCard, answer string) (models.QuizCard, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return question, models.ErrEmptyAnswer
	}

	question.ID = newIDFunc()
	question.Answer = answer
	question.IsCorrect = IsCorrectAnswer(question.Translation, answer)
	question.AnsweredAt = nowFunc()

	if err := q.repo.AddQuizResult(ctx, question); err != nil {
		q.log.Warn("failed to save quiz result", zap.Int64("user_id", question.UserID), zap.String("card_id", question.CardID), zap.Error(err))
		return question, err
	}

	return question, nil
}

// CheckCardAnswer grades the answer against the stored card, so the caller
// cannot supply its own translation.
func (q *QuizS) CheckCardAnswer(ctx context.Context, userID int64, cardID, answer string) (models.QuizCard, error) {
	card, err := q.picker.Card(ctx, userID, cardID)
	if err != nil {
		return models.QuizCard{}, err
	}

	question := models.QuizCard{
		UserID:      userID,
		CardID:      card.ID,
		Term:        card.Term,
		Translation: card.Translation,
		Category:    card.Category,
	}
	return q.CheckAnswer(ctx, question, answer)
}

// IsCorrectAnswer compares case-insensitively, ignoring surrounding spaces.
func IsCorrectAnswer(translation, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(translation), strings.TrimSpace(answer))
}

func (q *QuizS) QuizStats(ctx context.Context, userID int64) (models.QuizStats, error) {
	stats, err := q.repo.QuizStats(ctx, userID)
	if err != nil {
		q.log.Warn("failed to get quiz stats", zap.Int64("user_id", userID), zap.Error(err))
		return models.QuizStats{}, err
	}
	return stats, nil
}

func (q *QuizS) QuizStatsText(ctx context.Context, userID int64) (string, error) {
	stats, err := q.QuizStats(ctx, userID)
	if err != nil {
		return "", err
	}

	return quizStatsFormat(stats), nil
}

func quizStatsFormat(stats models.QuizStats) string {
	var sb strings.Builder

	sb.WriteString("📊 *Всього відповідей*: ")
	sb.WriteString(fmt.Sprint(stats.TotalCount))
	sb.WriteString("\n\n")

	sb.WriteString("✅ *Вірно*: ")
	sb.WriteString(fmt.Sprint(stats.RightCount))
	sb.WriteString("\n\n")

	sb.WriteString("❌ *Невірно*: ")
	sb.WriteString(fmt.Sprint(stats.WrongCount))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("🎯 *Відсоток правильних*: %.1f%%", stats.Percent()))

	return sb.String()
}
