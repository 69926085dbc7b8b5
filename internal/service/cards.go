package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/DanRulev/flashbot.git/pkg/validator"
	"go.uber.org/zap"
)

const cardsPageSize = 10

type CardRI interface {
	AddCard(ctx context.Context, card models.Flashcard) error
	Card(ctx context.Context, userID int64, cardID string) (models.Flashcard, error)
	Cards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error)
	RandomCard(ctx context.Context, userID int64, category string) (models.Flashcard, error)
	Categories(ctx context.Context, userID int64) ([]string, error)
	DeleteCard(ctx context.Context, userID int64, cardID string) error
}

type CardS struct {
	repo CardRI
	log  *zap.Logger
}

func NewCardService(repo CardRI, log *zap.Logger) *CardS {
	return &CardS{
		repo: repo,
		log:  log,
	}
}

// AddCard stores a new card. Every field must be non-empty after trimming.
func (c *CardS) AddCard(ctx context.Context, userID int64, draft models.CardDraft) (models.Flashcard, error) {
	card := draft.Card(userID)

	if err := validator.ValidateStruct(card); err != nil {
		return models.Flashcard{}, fmt.Errorf("%w: %v", models.ErrInvalidCard, err)
	}

	card.ID = newIDFunc()
	card.CreatedAt = nowFunc()

	if err := c.repo.AddCard(ctx, card); err != nil {
		c.log.Error("failed to add card", zap.Int64("user_id", userID), zap.Error(err))
		return models.Flashcard{}, err
	}

	c.log.Debug("card added", zap.Int64("user_id", userID), zap.String("card_id", card.ID), zap.String("category", card.Category))

	return card, nil
}

// Cards lists the user's cards, all of them when category is empty.
func (c *CardS) Cards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error) {
	cards, err := c.repo.Cards(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, models.ErrNoCards
	}
	return cards, nil
}

// CardsText renders one page of the user's cards and reports whether a next
// page exists. Pages past the end render the last page.
func (c *CardS) CardsText(ctx context.Context, userID int64, category string, page int) (string, bool, error) {
	cards, err := c.Cards(ctx, userID, category)
	if err != nil {
		return "", false, err
	}

	total := len(cards)
	totalPages := (total + cardsPageSize - 1) / cardsPageSize
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * cardsPageSize
	end := min(start+cardsPageSize, total)

	return formatCards(cards[start:end], category, page, totalPages, total), end < total, nil
}

func (c *CardS) Categories(ctx context.Context, userID int64) ([]string, error) {
	return c.repo.Categories(ctx, userID)
}

func (c *CardS) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	if err := c.repo.DeleteCard(ctx, userID, cardID); err != nil {
		if !errors.Is(err, models.ErrCardNotFound) {
			c.log.Error("failed to delete card", zap.Int64("user_id", userID), zap.String("card_id", cardID), zap.Error(err))
		}
		return err
	}
	return nil
}

func (c *CardS) ExportCards(ctx context.Context, userID int64) ([]byte, error) {
	cards, err := c.Cards(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	data, err := cardsWorkbook(cards)
	if err != nil {
		c.log.Error("failed to build cards workbook", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// ImportCards adds every complete row of an uploaded workbook and returns
// how many cards were added. Incomplete rows are skipped.
func (c *CardS) ImportCards(ctx context.Context, userID int64, r io.Reader) (int, error) {
	drafts, err := cardDrafts(r)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, draft := range drafts {
		if _, err := c.AddCard(ctx, userID, draft); err != nil {
			if errors.Is(err, models.ErrInvalidCard) {
				c.log.Debug("skipping workbook row", zap.Int("row", i+2), zap.Error(err))
				continue
			}
			return imported, err
		}
		imported++
	}

	c.log.Info("cards imported", zap.Int64("user_id", userID), zap.Int("count", imported))
	return imported, nil
}

func formatCards(cards []models.Flashcard, category string, page, totalPages, total int) string {
	var sb strings.Builder

	if category == "" {
		sb.WriteString("📚 *Всі картки*")
	} else {
		sb.WriteString("🗂 *Картки в категорії*: ")
		sb.WriteString(escapeMarkdown(category))
	}
	if totalPages > 1 {
		sb.WriteString(fmt.Sprintf("\nСторінка (%d/%d) | Всього карток (%d)", page+1, totalPages, total))
	}
	sb.WriteString("\n\n")

	for i, card := range cards {
		sb.WriteString(fmt.Sprintf("%d. *Термін:* %s, Переклад: %s", page*cardsPageSize+i+1,
			escapeMarkdown(card.Term),
			escapeMarkdown(card.Translation),
		))
		if category == "" {
			sb.WriteString(", Категорія: ")
			sb.WriteString(escapeMarkdown(card.Category))
		}
		if i < len(cards)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

const markdownSpecials = "_*`["

func escapeMarkdown(text string) string {
	for _, c := range markdownSpecials {
		text = strings.ReplaceAll(text, string(c), "\\"+string(c))
	}
	return text
}

// boldMarkdown makes text bold. Legacy Markdown allows no escapes inside an
// entity, so special characters break the bold run and are escaped outside it.
func boldMarkdown(text string) string {
	var sb strings.Builder

	start := 0
	flush := func(end int) {
		if end > start {
			sb.WriteString("*" + text[start:end] + "*")
		}
	}
	for i, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			flush(i)
			sb.WriteString("\\" + string(r))
			start = i + 1
		}
	}
	flush(len(text))

	return sb.String()
}
