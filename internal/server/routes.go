package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Rates
	s.echo.GET("/api/rates", s.handleListRates)
	s.echo.GET("/api/rates/:id", s.handleGetRate)
	s.echo.PUT("/api/rates/:id", s.handleUpdateRate)

	// Products
	s.echo.GET("/api/products", s.handleListProducts)
	s.echo.GET("/api/products/:id", s.handleGetProduct)
	s.echo.POST("/api/products", s.handleCreateProduct)
	s.echo.PUT("/api/products/:id", s.handleUpdateProduct)
	s.echo.DELETE("/api/products/:id", s.handleDeleteProduct)

	// Collections
	s.echo.GET("/api/collections", s.handleListCollections)
	s.echo.GET("/api/collections/:id", s.handleGetCollection)
	s.echo.GET("/api/collections/:id/products", s.handleListCollectionProducts)
	s.echo.POST("/api/collections", s.handleCreateCollection)
	s.echo.PUT("/api/collections/:id", s.handleUpdateCollection)
	s.echo.DELETE("/api/collections/:id", s.handleDeleteCollection)

	// Live updates (anonymous, no auth)
	s.echo.GET("/ws/live", s.handleWebSocket)
}
