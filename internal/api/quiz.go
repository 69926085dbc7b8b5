package api

import (
	"context"
	"net/http"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/gin-gonic/gin"
)

type QuizSI interface {
	NewQuestion(ctx context.Context, userID int64, category string) (models.QuizCard, error)
	CheckCardAnswer(ctx context.Context, userID int64, cardID, answer string) (models.QuizCard, error)
	QuizStats(ctx context.Context, userID int64) (models.QuizStats, error)
}

// answerRequest names the card being answered, the translation is loaded
// from the store.
type answerRequest struct {
	CardID string `json:"card_id" binding:"required"`
	Answer string `json:"answer"`
}

type statsResponse struct {
	models.QuizStats
	Percent float64 `json:"percent"`
}

// GetQuestion handles GET /api/users/:userId/quiz?category=
func (h *Handler) GetQuestion(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	question, err := h.service.NewQuestion(c.Request.Context(), id, c.Query("category"))
	if err != nil {
		h.fail(c, "failed to get question", err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CheckAnswer handles POST /api/users/:userId/quiz/answer
func (h *Handler) CheckAnswer(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.CheckCardAnswer(c.Request.Context(), id, req.CardID, req.Answer)
	if err != nil {
		h.fail(c, "failed to check answer", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStats handles GET /api/users/:userId/stats
func (h *Handler) GetStats(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	stats, err := h.service.QuizStats(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "failed to get stats", err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{QuizStats: stats, Percent: stats.Percent()})
}
