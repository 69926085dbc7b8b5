package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/DanRulev/flashbot.git/internal/client"
	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServiceI interface {
	CardSI
	QuizSI
	WeatherSI
}

type Handler struct {
	service ServiceI
	log     *zap.Logger
}

func NewHandler(service ServiceI, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// NewRouter mounts every route under /api.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(h.log), gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/ping", PingHandler)

		users := api.Group("/users/:userId")
		users.GET("/cards", h.GetCards)
		users.POST("/cards", h.AddCard)
		users.DELETE("/cards/:cardId", h.DeleteCard)
		users.GET("/cards/export", h.ExportCards)
		users.POST("/cards/import", h.ImportCards)
		users.GET("/categories", h.GetCategories)

		users.GET("/quiz", h.GetQuestion)
		users.POST("/quiz/answer", h.CheckAnswer)
		users.GET("/stats", h.GetStats)

		api.GET("/weather/:city", h.GetWeather)
		api.GET("/weather/:city/forecast", h.GetForecast)
		api.GET("/weather/:city/forecast/chart", h.GetForecastChart)
	}

	return router
}

func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type Server struct {
	srv *http.Server
	log *zap.Logger
}

func NewServer(addr string, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server started", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCard),
		errors.Is(err, models.ErrEmptyAnswer),
		errors.Is(err, models.ErrEmptyCity),
		errors.Is(err, models.ErrBadWorkbook):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoCards),
		errors.Is(err, models.ErrCardNotFound),
		errors.Is(err, models.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
