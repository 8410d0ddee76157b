// Package server implements the public FoodTok HTTP API: the sample feed,
// the video upload endpoint, and Prometheus metrics. The AI pipeline does
// not depend on this package; they meet only through the storage bucket.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"

	"github.com/foodtok/foodtok-backend/internal/models"
)

var (
	feedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodtok_feed_requests_total",
		Help: "Number of feed requests served.",
	})
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodtok_uploads_total",
		Help: "Number of video uploads handled, by result.",
	}, []string{"result"})
)

// sampleFeed is the fixed feed served until real ranking exists.
var sampleFeed = []models.FeedItem{
	{ID: "1", UserID: "user1", VideoURL: "sample_video_1.mp4", Description: "Delicious homemade pasta!", Likes: 1000, Comments: 50},
	{ID: "2", UserID: "user2", VideoURL: "sample_video_2.mp4", Description: "Quick and easy breakfast recipe", Likes: 800, Comments: 30},
	{ID: "3", UserID: "user3", VideoURL: "sample_video_3.mp4", Description: "Spicy Korean BBQ tacos fusion! 🌮🔥", Likes: 2500, Comments: 120},
	{ID: "4", UserID: "user4", VideoURL: "sample_video_4.mp4", Description: "5-minute sushi bowl hack 🍣", Likes: 1500, Comments: 75},
	{ID: "5", UserID: "user5", VideoURL: "sample_video_5.mp4", Description: "Ultimate chocolate lava cake dessert 🍫", Likes: 3000, Comments: 200},
}

// Server is the FoodTok API server.
type Server struct {
	echo     *echo.Echo
	uploader ObjectUploader
}

// New builds the server with its routes and middleware. uploader may be nil,
// in which case uploads are accepted and echoed but not stored.
func New(logger *slog.Logger, uploader ObjectUploader) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())

	s := &Server{echo: e, uploader: uploader}

	e.GET("/", s.handleRoot)
	e.GET("/feed", s.handleFeed)
	e.POST("/upload", s.handleUpload)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start begins serving on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to FoodTok API"})
}

func (s *Server) handleFeed(c echo.Context) error {
	feedRequestsTotal.Inc()
	return c.JSON(http.StatusOK, sampleFeed)
}
