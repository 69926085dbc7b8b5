package memory

import (
	"context"
	"testing"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	ctx := context.Background()
	for _, c := range []models.Flashcard{
		{ID: "1", UserID: 1, Term: "cat", Translation: "кіт", Category: "animals"},
		{ID: "2", UserID: 1, Term: "bread", Translation: "хліб", Category: "food"},
		{ID: "3", UserID: 1, Term: "dog", Translation: "пес", Category: "animals"},
		{ID: "4", UserID: 2, Term: "sun", Translation: "сонце", Category: "nature"},
	} {
		require.NoError(t, s.AddCard(ctx, c))
	}
	return s
}

func TestStore_Cards(t *testing.T) {
	t.Parallel()

	s := seeded(t)
	ctx := context.Background()

	all, err := s.Cards(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"cat", "bread", "dog"}, []string{all[0].Term, all[1].Term, all[2].Term})

	animals, err := s.Cards(ctx, 1, "animals")
	require.NoError(t, err)
	require.Len(t, animals, 2)
	for _, c := range animals {
		assert.Equal(t, "animals", c.Category)
	}

	none, err := s.Cards(ctx, 3, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Card(t *testing.T) {
	t.Parallel()

	s := seeded(t)
	ctx := context.Background()

	card, err := s.Card(ctx, 1, "2")
	require.NoError(t, err)
	assert.Equal(t, "bread", card.Term)

	_, err = s.Card(ctx, 2, "2")
	assert.ErrorIs(t, err, models.ErrCardNotFound)

	_, err = s.Card(ctx, 1, "missing")
	assert.ErrorIs(t, err, models.ErrCardNotFound)
}

func TestStore_DuplicatesAllowed(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	card := models.Flashcard{ID: "1", UserID: 1, Term: "cat", Translation: "кіт", Category: "animals"}
	require.NoError(t, s.AddCard(ctx, card))
	require.NoError(t, s.AddCard(ctx, card))

	all, err := s.Cards(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_RandomCard(t *testing.T) {
	t.Parallel()

	s := seeded(t)
	ctx := context.Background()

	s.intn = func(n int) int { return n - 1 }

	card, err := s.RandomCard(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "dog", card.Term)

	card, err = s.RandomCard(ctx, 1, "food")
	require.NoError(t, err)
	assert.Equal(t, "bread", card.Term)

	_, err = s.RandomCard(ctx, 1, "colors")
	assert.ErrorIs(t, err, models.ErrNoCards)

	_, err = s.RandomCard(ctx, 9, "")
	assert.ErrorIs(t, err, models.ErrNoCards)
}

func TestStore_Categories(t *testing.T) {
	t.Parallel()

	s := seeded(t)

	got, err := s.Categories(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "food"}, got)
}

func TestStore_DeleteCard(t *testing.T) {
	t.Parallel()

	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteCard(ctx, 1, "2"))
	assert.ErrorIs(t, s.DeleteCard(ctx, 1, "2"), models.ErrCardNotFound)
	assert.ErrorIs(t, s.DeleteCard(ctx, 2, "1"), models.ErrCardNotFound)

	all, err := s.Cards(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_QuizStats(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddQuizResult(ctx, models.QuizCard{UserID: 1, IsCorrect: true}))
	require.NoError(t, s.AddQuizResult(ctx, models.QuizCard{UserID: 1, IsCorrect: false}))
	require.NoError(t, s.AddQuizResult(ctx, models.QuizCard{UserID: 1, IsCorrect: true}))

	stats, err := s.QuizStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.QuizStats{TotalCount: 3, RightCount: 2, WrongCount: 1}, stats)

	empty, err := s.QuizStats(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, empty)
}
