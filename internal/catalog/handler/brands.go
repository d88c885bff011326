package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
)

type brandRequest struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

func addBrandHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req brandRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}

		item, err := svc.AddBrand(c.Request().Context(), dto.BrandWrite{Name: req.Name, LogoURL: req.LogoURL})
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func updateBrandHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		var req brandRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}

		item, err := svc.UpdateBrand(c.Request().Context(), db.ToPgUUID(guid), dto.BrandWrite{Name: req.Name, LogoURL: req.LogoURL})
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func removeBrandHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		if err := svc.RemoveBrand(c.Request().Context(), db.ToPgUUID(guid)); err != nil {
			return writeError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getBrandHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		item, err := svc.GetBrand(c.Request().Context(), db.ToPgUUID(guid))
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func listBrandsHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageNumber, pageSize := pageParams(c)
		page, err := svc.ListBrands(c.Request().Context(), pageNumber, pageSize)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, page)
	}
}
