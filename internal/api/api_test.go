package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanRulev/flashbot.git/internal/client"
	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/DanRulev/flashbot.git/internal/service"
	"github.com/DanRulev/flashbot.git/internal/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const currentBody = `{
	"name": "Kyiv",
	"dt": 1700000000,
	"main": {"temp": 3.5, "feels_like": 1.2, "pressure": 1012, "humidity": 80},
	"weather": [{"description": "хмарно"}],
	"wind": {"speed": 4.1},
	"sys": {"country": "UA"}
}`

const forecastBody = `{
	"list": [
		{"dt": 1700000000, "main": {"temp": 3.5, "humidity": 80}, "weather": [{"description": "хмарно"}], "wind": {"speed": 4}},
		{"dt": 1700010800, "main": {"temp": 5.0, "humidity": 70}, "weather": [{"description": "ясно"}], "wind": {"speed": 3}}
	],
	"city": {"name": "Kyiv", "country": "UA", "timezone": 7200}
}`

// weatherStub answers like OpenWeatherMap: Kyiv is known, Atlantis is not,
// anything else is an outage.
func weatherStub(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("q") {
	case "Kyiv":
		if r.URL.Path == "/data/2.5/forecast" {
			_, _ = w.Write([]byte(forecastBody))
			return
		}
		_, _ = w.Write([]byte(currentBody))
	case "Atlantis":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"cod": 500, "message": "internal error"}`))
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(weatherStub))
	t.Cleanup(srv.Close)

	weather := client.NewOpenWeatherAPI(srv.Client(), srv.URL, "secret", "metric", "uk")
	services := service.InitServices(weather, memory.NewStore(), zap.NewNop())

	return NewRouter(NewHandler(services, zap.NewNop()))
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(data)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestPing(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(t), http.MethodGet, "/api/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())
}

func TestCards(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/users/1/cards", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/users/1/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/users/1/cards", models.CardDraft{Term: " cat ", Translation: "кіт", Category: "animals"})
	require.Equal(t, http.StatusCreated, w.Code)
	cat := decode[models.Flashcard](t, w)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "cat", cat.Term)
	assert.Equal(t, int64(1), cat.UserID)

	w = do(t, router, http.MethodPost, "/api/users/1/cards", models.CardDraft{Term: "bread", Translation: "хліб", Category: "food"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/api/users/1/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Flashcard](t, w), 2)

	w = do(t, router, http.MethodGet, "/api/users/1/cards?category=food", nil)
	require.Equal(t, http.StatusOK, w.Code)
	food := decode[[]models.Flashcard](t, w)
	require.Len(t, food, 1)
	assert.Equal(t, "bread", food[0].Term)

	w = do(t, router, http.MethodGet, "/api/users/1/categories", nil)
	assert.JSONEq(t, `["animals", "food"]`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/users/2/cards", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/api/users/1/cards/"+cat.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodDelete, "/api/users/1/cards/"+cat.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCard_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		body any
	}{
		{name: "empty category", path: "/api/users/1/cards", body: models.CardDraft{Term: "cat", Translation: "кіт", Category: "  "}},
		{name: "malformed json", path: "/api/users/1/cards", body: `{"term": `},
		{name: "invalid user id", path: "/api/users/abc/cards", body: models.CardDraft{Term: "cat", Translation: "кіт", Category: "a"}},
		{name: "negative user id", path: "/api/users/-4/cards", body: models.CardDraft{Term: "cat", Translation: "кіт", Category: "a"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(t, newTestRouter(t), http.MethodPost, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestQuiz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/users/1/quiz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/users/1/cards", models.CardDraft{Term: "cat", Translation: "Кіт", Category: "animals"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/api/users/1/quiz?category=animals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	question := decode[models.QuizCard](t, w)
	assert.Equal(t, "cat", question.Term)

	w = do(t, router, http.MethodGet, "/api/users/1/quiz?category=food", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	answer := map[string]string{"card_id": question.CardID}

	answer["answer"] = "  "
	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", answer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	answer["answer"] = " кІТ "
	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.QuizCard](t, w).IsCorrect)

	answer["answer"] = "пес"
	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.QuizCard](t, w).IsCorrect)

	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", map[string]string{"answer": "кіт"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", map[string]string{"card_id": "x", "answer": "a"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/users/2/quiz/answer", map[string]string{"card_id": question.CardID, "answer": "кіт"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/users/1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total": 2, "correct": 1, "incorrect": 1, "percent": 50}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/users/9/stats", nil)
	assert.JSONEq(t, `{"total": 0, "correct": 0, "incorrect": 0, "percent": 0}`, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/users/1/quiz/answer", map[string]string{"card_id": question.CardID, "translation": "пес", "answer": "пес"})
	require.Equal(t, http.StatusOK, w.Code)
	graded := decode[models.QuizCard](t, w)
	assert.False(t, graded.IsCorrect)
	assert.Equal(t, "Кіт", graded.Translation)
}

func TestExportImport(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/users/1/cards/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, draft := range []models.CardDraft{
		{Term: "cat", Translation: "кіт", Category: "animals"},
		{Term: "bread", Translation: "хліб", Category: "food"},
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/users/1/cards", draft).Code)
	}

	w = do(t, router, http.MethodGet, "/api/users/1/cards/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "flashcards-1.xlsx")
	workbook := w.Body.Bytes()

	upload := func(data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "cards.xlsx")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/users/2/cards/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	w = upload(workbook)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imported": 2}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/users/2/categories", nil)
	assert.JSONEq(t, `["animals", "food"]`, w.Body.String())

	w = upload([]byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/users/2/cards/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeather(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		assertFunc func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:       "current",
			path:       "/api/weather/Kyiv",
			wantStatus: http.StatusOK,
			assertFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				current := decode[models.CurrentWeather](t, w)
				assert.Equal(t, "Kyiv", current.City)
				assert.Equal(t, "UA", current.Country)
				assert.InDelta(t, 3.5, current.Temp, 0.001)
			},
		},
		{
			name:       "forecast",
			path:       "/api/weather/Kyiv/forecast",
			wantStatus: http.StatusOK,
			assertFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				forecast := decode[models.Forecast](t, w)
				assert.Equal(t, "Kyiv", forecast.City)
				assert.Len(t, forecast.Points, 2)
			},
		},
		{
			name:       "forecast chart",
			path:       "/api/weather/Kyiv/forecast/chart",
			wantStatus: http.StatusOK,
			assertFunc: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
				assert.NotEmpty(t, w.Body.Bytes())
			},
		},
		{
			name:       "unknown city",
			path:       "/api/weather/Atlantis",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown city forecast",
			path:       "/api/weather/Atlantis/forecast",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream failure",
			path:       "/api/weather/Lviv",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "blank city",
			path:       "/api/weather/%20",
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(t, newTestRouter(t), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.assertFunc != nil {
				tt.assertFunc(t, w)
			}
		})
	}
}

func TestServer_Start(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
