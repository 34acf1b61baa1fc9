package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/broadcast"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/config"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	apperrors "github.com/abhisoniabhi/rp-jewellers-sub000/internal/errors"
)

// AppService is the slice of the application layer the HTTP handlers need.
type AppService interface {
	ListRates(ctx context.Context) ([]domain.Rate, error)
	GetRate(ctx context.Context, id int64) (*domain.Rate, error)
	UpdateRate(ctx context.Context, id int64, current int64) (*domain.Rate, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCollectionProducts(ctx context.Context, collectionID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollection(ctx context.Context, id int64) (*domain.Collection, error)
	CreateCollection(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

// postgresHealthChecker is the minimal interface for readiness checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       AppService
	hub       *broadcast.Hub
	db        postgresHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, app AppService, hub *broadcast.Hub, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		hub:       hub,
		db:        db,
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
