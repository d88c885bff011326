package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/search"
)

// searchHandler backs the shopper-facing "/offer" endpoint (§4.6): a
// paginated, filtered query over the projected document store.
func searchHandler(svc *search.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageNumber, pageSize := pageParams(c)

		filter := search.Filter{
			Text:             c.QueryParam("text"),
			CategoryGUID:     c.QueryParam("category_guid"),
			BrandGUID:        c.QueryParam("brand_guid"),
			TagEN:            c.QueryParam("tag"),
			ColorEN:          c.QueryParam("color"),
			MinDiscountedUSD: c.QueryParam("min_price"),
			MaxDiscountedUSD: c.QueryParam("max_price"),
		}

		page, err := svc.Search(c.Request().Context(), pageNumber, pageSize, filter)
		if err != nil {
			logger.Error("search failed", zap.Error(err))
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
		}
		return c.JSON(http.StatusOK, page)
	}
}
