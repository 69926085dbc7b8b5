package models

import (
	"strings"
	"time"
)

type Flashcard struct {
	ID          string    `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Term        string    `db:"term" json:"term" validate:"required"`
	Translation string    `db:"translation" json:"translation" validate:"required"`
	Category    string    `db:"category" json:"category" validate:"required"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CardDraft collects the fields of a card while the user types them one by one.
type CardDraft struct {
	Term        string `json:"term,omitempty"`
	Translation string `json:"translation,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (d CardDraft) Card(userID int64) Flashcard {
	return Flashcard{
		UserID:      userID,
		Term:        strings.TrimSpace(d.Term),
		Translation: strings.TrimSpace(d.Translation),
		Category:    strings.TrimSpace(d.Category),
	}
}
