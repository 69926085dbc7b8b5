package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/DanRulev/flashbot.git/internal/models"
)

// Store keeps cards and quiz counters for the lifetime of the process.
type Store struct {
	mu    sync.Mutex
	cards map[int64][]models.Flashcard
	stats map[int64]models.QuizStats
	intn  func(n int) int
}

func NewStore() *Store {
	return &Store{
		cards: make(map[int64][]models.Flashcard),
		stats: make(map[int64]models.QuizStats),
		intn:  rand.Intn,
	}
}

func (s *Store) AddCard(_ context.Context, card models.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.UserID] = append(s.cards[card.UserID], card)
	return nil
}

func (s *Store) Card(_ context.Context, userID int64, cardID string) (models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cards[userID] {
		if c.ID == cardID {
			return c, nil
		}
	}
	return models.Flashcard{}, models.ErrCardNotFound
}

func (s *Store) Cards(_ context.Context, userID int64, category string) ([]models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(userID, category), nil
}

func (s *Store) RandomCard(_ context.Context, userID int64, category string) (models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.filter(userID, category)
	if len(cards) == 0 {
		return models.Flashcard{}, models.ErrNoCards
	}
	return cards[s.intn(len(cards))], nil
}

func (s *Store) Categories(_ context.Context, userID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, c := range s.cards[userID] {
		if !seen[c.Category] {
			seen[c.Category] = true
			categories = append(categories, c.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) DeleteCard(_ context.Context, userID int64, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.cards[userID]
	for i, c := range cards {
		if c.ID == cardID {
			s.cards[userID] = append(cards[:i:i], cards[i+1:]...)
			return nil
		}
	}
	return models.ErrCardNotFound
}

func (s *Store) AddQuizResult(_ context.Context, result models.QuizCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.stats[result.UserID]
	stats.TotalCount++
	if result.IsCorrect {
		stats.RightCount++
	} else {
		stats.WrongCount++
	}
	s.stats[result.UserID] = stats
	return nil
}

func (s *Store) QuizStats(_ context.Context, userID int64) (models.QuizStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats[userID], nil
}

// filter returns a copy so callers never alias the stored slice.
func (s *Store) filter(userID int64, category string) []models.Flashcard {
	out := make([]models.Flashcard, 0, len(s.cards[userID]))
	for _, c := range s.cards[userID] {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out
}
