package repository

import (
	"context"
	"fmt"

	"github.com/DanRulev/flashbot.git/internal/models"
)

const (
	insertQuizResultQuery = `
		INSERT INTO quiz_results (id, user_id, card_id, term, translation, category, answer, is_correct, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	// COUNT over CASE skips NULLs, so no COALESCE is needed for users
	// without answers.
	quizStatsQuery = `
		SELECT COUNT(*) AS total_count,
		       COUNT(CASE WHEN is_correct THEN 1 END) AS right_count
		FROM quiz_results
		WHERE user_id = $1`
)

type QuizR struct {
	db QueryI
}

func NewQuizRepository(db QueryI) *QuizR {
	return &QuizR{db: db}
}

// AddQuizResult appends one graded answer to the user's history.
func (q *QuizR) AddQuizResult(ctx context.Context, result models.QuizCard) error {
	if _, err := q.db.ExecContext(ctx, insertQuizResultQuery,
		result.ID,
		result.UserID,
		result.CardID,
		result.Term,
		result.Translation,
		result.Category,
		result.Answer,
		result.IsCorrect,
		result.AnsweredAt,
	); err != nil {
		return fmt.Errorf("failed to insert quiz result: %w", err)
	}
	return nil
}

func (q *QuizR) QuizStats(ctx context.Context, userID int64) (models.QuizStats, error) {
	var stats models.QuizStats
	if err := q.db.GetContext(ctx, &stats, quizStatsQuery, userID); err != nil {
		return models.QuizStats{}, fmt.Errorf("failed to count quiz results: %w", err)
	}

	stats.WrongCount = stats.TotalCount - stats.RightCount
	return stats, nil
}
