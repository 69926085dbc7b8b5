package models

type SessionState string

const (
	StateIdle            SessionState = ""
	StateCardTerm        SessionState = "card_term"
	StateCardTranslation SessionState = "card_translation"
	StateCardCategory    SessionState = "card_category"
	StateQuizAnswer      SessionState = "quiz_answer"
	StateWeatherCity     SessionState = "weather_city"
)

// Session is the per-user dialog state kept between bot updates.
type Session struct {
	State       SessionState `json:"state"`
	Draft       CardDraft    `json:"draft"`
	Quiz        *QuizCard    `json:"quiz,omitempty"`
	Category    string       `json:"category,omitempty"`
	WeatherCity string       `json:"weather_city,omitempty"`
}
