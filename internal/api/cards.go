package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CardSI interface {
	AddCard(ctx context.Context, userID int64, draft models.CardDraft) (models.Flashcard, error)
	Cards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error)
	Categories(ctx context.Context, userID int64) ([]string, error)
	DeleteCard(ctx context.Context, userID int64, cardID string) error
	ExportCards(ctx context.Context, userID int64) ([]byte, error)
	ImportCards(ctx context.Context, userID int64, r io.Reader) (int, error)
}

// GetCards handles GET /api/users/:userId/cards?category=
func (h *Handler) GetCards(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	cards, err := h.service.Cards(c.Request.Context(), id, c.Query("category"))
	if err != nil {
		h.fail(c, "failed to retrieve cards", err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// AddCard handles POST /api/users/:userId/cards
func (h *Handler) AddCard(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var draft models.CardDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	card, err := h.service.AddCard(c.Request.Context(), id, draft)
	if err != nil {
		h.fail(c, "failed to add card", err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// DeleteCard handles DELETE /api/users/:userId/cards/:cardId
func (h *Handler) DeleteCard(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCard(c.Request.Context(), id, c.Param("cardId")); err != nil {
		h.fail(c, "failed to delete card", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCategories handles GET /api/users/:userId/categories
func (h *Handler) GetCategories(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	categories, err := h.service.Categories(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "failed to retrieve categories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

// ExportCards handles GET /api/users/:userId/cards/export
func (h *Handler) ExportCards(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	data, err := h.service.ExportCards(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "failed to export cards", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="flashcards-%d.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ImportCards handles POST /api/users/:userId/cards/import with a "file"
// form field holding an .xlsx workbook.
func (h *Handler) ImportCards(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	imported, err := h.service.ImportCards(c.Request.Context(), id, file)
	if err != nil {
		h.fail(c, "failed to import cards", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
