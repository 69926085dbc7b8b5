package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type QueryI interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repository struct {
	*CardsR
	*QuizR
}

func NewRepository(db QueryI) Repository {
	return Repository{
		CardsR: NewCardsRepository(db),
		QuizR:  NewQuizRepository(db),
	}
}

// The schema sticks to types that both postgres and sqlite accept.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS flashcards (
		id          TEXT PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		term        TEXT NOT NULL,
		translation TEXT NOT NULL,
		category    TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS flashcards_user_category_idx ON flashcards (user_id, category)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id          TEXT PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		card_id     TEXT NOT NULL,
		term        TEXT NOT NULL,
		translation TEXT NOT NULL,
		category    TEXT NOT NULL,
		answer      TEXT NOT NULL,
		is_correct  BOOLEAN NOT NULL,
		answered_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_results_user_idx ON quiz_results (user_id)`,
}

func Migrate(ctx context.Context, db QueryI) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
