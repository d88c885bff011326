package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
)

type categoryRequest struct {
	NameEN string `json:"name_en"`
	NamePL string `json:"name_pl"`
}

func addCategoryHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req categoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}

		item, err := svc.AddCategory(c.Request().Context(), dto.CategoryWrite{NameEN: req.NameEN, NamePL: req.NamePL})
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func updateCategoryHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		var req categoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}

		item, err := svc.UpdateCategory(c.Request().Context(), db.ToPgUUID(guid), dto.CategoryWrite{NameEN: req.NameEN, NamePL: req.NamePL})
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func removeCategoryHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		if err := svc.RemoveCategory(c.Request().Context(), db.ToPgUUID(guid)); err != nil {
			return writeError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getCategoryHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		item, err := svc.GetCategory(c.Request().Context(), db.ToPgUUID(guid))
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func listCategoriesHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageNumber, pageSize := pageParams(c)
		page, err := svc.ListCategories(c.Request().Context(), pageNumber, pageSize)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, page)
	}
}
