package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
)

type tagRequest struct {
	EN string `json:"en"`
	PL string `json:"pl"`
}

func addTagHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req tagRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}

		item, err := svc.AddTag(c.Request().Context(), dto.NewTag{EN: req.EN, PL: req.PL})
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func removeTagHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		if err := svc.RemoveTag(c.Request().Context(), db.ToPgUUID(guid)); err != nil {
			return writeError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getTagHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		item, err := svc.GetTag(c.Request().Context(), db.ToPgUUID(guid))
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func listTagsHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageNumber, pageSize := pageParams(c)
		page, err := svc.ListTags(c.Request().Context(), pageNumber, pageSize)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, page)
	}
}
