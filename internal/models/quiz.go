package models

import "time"

type QuizCard struct {
	ID          string    `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CardID      string    `db:"card_id" json:"card_id"`
	Term        string    `db:"term" json:"term"`
	Translation string    `db:"translation" json:"translation"`
	Category    string    `db:"category" json:"category"`
	Answer      string    `db:"answer" json:"answer"`
	IsCorrect   bool      `db:"is_correct" json:"is_correct"`
	AnsweredAt  time.Time `db:"answered_at" json:"answered_at"`
}

type QuizStats struct {
	TotalCount int `db:"total_count" json:"total"`
	RightCount int `db:"right_count" json:"correct"`
	WrongCount int `db:"wrong_count" json:"incorrect"`
}

// Percent is the share of correct answers, 0 when nothing was answered yet.
func (s QuizStats) Percent() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.RightCount) / float64(s.TotalCount) * 100
}
