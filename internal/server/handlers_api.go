package server

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	apperrors "github.com/abhisoniabhi/rp-jewellers-sub000/internal/errors"
)

func idParam(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationError("invalid id").WithField("id", raw)
	}
	return id, nil
}

func mapNotFound(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrRateNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCollectionNotFound):
		return apperrors.NotFoundError(message)
	default:
		return err
	}
}

func (s *Server) handleListRates(c echo.Context) error {
	rates, err := s.app.ListRates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(200, rates)
}

func (s *Server) handleGetRate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	rate, err := s.app.GetRate(c.Request().Context(), id)
	if err != nil {
		return mapNotFound(err, "rate not found")
	}
	return c.JSON(200, rate)
}

type updateRateRequest struct {
	Current int64 `json:"current"`
}

func (s *Server) handleUpdateRate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateRateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	rate, err := s.app.UpdateRate(c.Request().Context(), id, req.Current)
	if err != nil {
		return mapNotFound(err, "rate not found")
	}
	return c.JSON(200, rate)
}

func (s *Server) handleListProducts(c echo.Context) error {
	products, err := s.app.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(200, products)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	product, err := s.app.GetProduct(c.Request().Context(), id)
	if err != nil {
		return mapNotFound(err, "product not found")
	}
	return c.JSON(200, product)
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var in domain.ProductInput
	if err := c.Bind(&in); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	product, err := s.app.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return mapNotFound(err, "collection not found")
	}
	return c.JSON(201, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var in domain.ProductInput
	if err := c.Bind(&in); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	product, err := s.app.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return mapNotFound(err, "product not found")
	}
	return c.JSON(200, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteProduct(c.Request().Context(), id); err != nil {
		return mapNotFound(err, "product not found")
	}
	return c.NoContent(204)
}

func (s *Server) handleListCollections(c echo.Context) error {
	collections, err := s.app.ListCollections(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(200, collections)
}

func (s *Server) handleGetCollection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	collection, err := s.app.GetCollection(c.Request().Context(), id)
	if err != nil {
		return mapNotFound(err, "collection not found")
	}
	return c.JSON(200, collection)
}

func (s *Server) handleListCollectionProducts(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	products, err := s.app.ListCollectionProducts(c.Request().Context(), id)
	if err != nil {
		return mapNotFound(err, "collection not found")
	}
	return c.JSON(200, products)
}

func (s *Server) handleCreateCollection(c echo.Context) error {
	var in domain.CollectionInput
	if err := c.Bind(&in); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	collection, err := s.app.CreateCollection(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(201, collection)
}

func (s *Server) handleUpdateCollection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var in domain.CollectionInput
	if err := c.Bind(&in); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	collection, err := s.app.UpdateCollection(c.Request().Context(), id, in)
	if err != nil {
		return mapNotFound(err, "collection not found")
	}
	return c.JSON(200, collection)
}

func (s *Server) handleDeleteCollection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteCollection(c.Request().Context(), id); err != nil {
		return mapNotFound(err, "collection not found")
	}
	return c.NoContent(204)
}
