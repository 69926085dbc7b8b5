package models

import "errors"

var (
	ErrNoCards      = errors.New("no flashcards")
	ErrCardNotFound = errors.New("flashcard not found")
	ErrInvalidCard  = errors.New("invalid flashcard")
	ErrCityNotFound = errors.New("city not found")
	ErrEmptyAnswer  = errors.New("empty answer")
	ErrEmptyCity    = errors.New("empty city name")
	ErrBadWorkbook  = errors.New("unreadable workbook")
)
