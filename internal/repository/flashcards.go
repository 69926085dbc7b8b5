package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DanRulev/flashbot.git/internal/models"
)

type CardsR struct {
	db QueryI
}

func NewCardsRepository(db QueryI) *CardsR {
	return &CardsR{db: db}
}

func (c *CardsR) AddCard(ctx context.Context, card models.Flashcard) error {
	query := `INSERT INTO flashcards (id, user_id, term, translation, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := c.db.ExecContext(ctx, query, card.ID, card.UserID, card.Term, card.Translation, card.Category, card.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert flashcard: %w", err)
	}

	return nil
}

func (c *CardsR) Card(ctx context.Context, userID int64, cardID string) (models.Flashcard, error) {
	query := `
		SELECT id, user_id, term, translation, category, created_at
		FROM flashcards
		WHERE user_id = $1 AND id = $2
	`

	var card models.Flashcard
	if err := c.db.GetContext(ctx, &card, query, userID, cardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flashcard{}, models.ErrCardNotFound
		}
		return models.Flashcard{}, fmt.Errorf("database error: %w", err)
	}

	return card, nil
}

func (c *CardsR) Cards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error) {
	cards := make([]models.Flashcard, 0)

	if category == "" {
		query := `
			SELECT id, user_id, term, translation, category, created_at
			FROM flashcards
			WHERE user_id = $1
			ORDER BY created_at, id
		`
		if err := c.db.SelectContext(ctx, &cards, query, userID); err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		return cards, nil
	}

	query := `
		SELECT id, user_id, term, translation, category, created_at
		FROM flashcards
		WHERE user_id = $1 AND category = $2
		ORDER BY created_at, id
	`
	if err := c.db.SelectContext(ctx, &cards, query, userID, category); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return cards, nil
}

func (c *CardsR) RandomCard(ctx context.Context, userID int64, category string) (models.Flashcard, error) {
	var (
		card models.Flashcard
		err  error
	)

	if category == "" {
		query := `
		SELECT id, user_id, term, translation, category, created_at
			FROM flashcards
			WHERE user_id = $1
			ORDER BY RANDOM()
			LIMIT 1
		`
		err = c.db.GetContext(ctx, &card, query, userID)
	} else {
		query := `
		SELECT id, user_id, term, translation, category, created_at
			FROM flashcards
			WHERE user_id = $1 AND category = $2
			ORDER BY RANDOM()
			LIMIT 1
		`
		err = c.db.GetContext(ctx, &card, query, userID, category)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flashcard{}, models.ErrNoCards
		}
		return models.Flashcard{}, fmt.Errorf("database error: %w", err)
	}

	return card, nil
}

func (c *CardsR) Categories(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT DISTINCT category FROM flashcards WHERE user_id = $1 ORDER BY category`

	categories := make([]string, 0)
	if err := c.db.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get categories for user %d: %w", userID, err)
	}

	return categories, nil
}

func (c *CardsR) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	query := `DELETE FROM flashcards WHERE user_id = $1 AND id = $2`

	res, err := c.db.ExecContext(ctx, query, userID, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}
	if n == 0 {
		return models.ErrCardNotFound
	}

	return nil
}
