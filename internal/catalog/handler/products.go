package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
)

// productRequest mirrors dto.ProductWrite at the wire boundary: prices and
// quantity arrive as JSON strings and are parsed to decimal.Decimal here
// (§9c), so a malformed numeric string fails validation before it ever
// reaches the orchestrator.
type productRequest struct {
	SKU           string   `json:"sku"`
	NameEN        string   `json:"name_en"`
	NamePL        string   `json:"name_pl"`
	ImageURL      *string  `json:"image_url"`
	DescriptionEN string   `json:"description_en"`
	DescriptionPL string   `json:"description_pl"`
	BasePriceUSD  string   `json:"base_price_usd"`
	BasePricePLN  string   `json:"base_price_pln"`
	Discount      *int32   `json:"discount"`
	Quantity      string   `json:"quantity"`
	WeightGrams   int32    `json:"weight"`
	ColorEN       string   `json:"color_en"`
	ColorPL       string   `json:"color_pl"`
	TagGUIDs      []string `json:"tag_guids"`
	CategoryGUID  string   `json:"category_guid"`
	BrandGUID     string   `json:"brand_guid"`
}

func (req productRequest) toWrite() (dto.ProductWrite, error) {
	basePriceUSD, err := decimal.NewFromString(req.BasePriceUSD)
	if err != nil {
		return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "base_price_usd")
	}
	basePricePLN, err := decimal.NewFromString(req.BasePricePLN)
	if err != nil {
		return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "base_price_pln")
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "quantity")
	}
	categoryGUID, err := uuid.Parse(req.CategoryGUID)
	if err != nil {
		return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "category_guid")
	}
	brandGUID, err := uuid.Parse(req.BrandGUID)
	if err != nil {
		return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "brand_guid")
	}
	tagGUIDs := make([]uuid.UUID, 0, len(req.TagGUIDs))
	for _, s := range req.TagGUIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return dto.ProductWrite{}, catalogerr.New(catalogerr.KindValidation, "tag_guids")
		}
		tagGUIDs = append(tagGUIDs, id)
	}

	return dto.ProductWrite{
		SKU:           req.SKU,
		NameEN:        req.NameEN,
		NamePL:        req.NamePL,
		ImageURL:      req.ImageURL,
		DescriptionEN: req.DescriptionEN,
		DescriptionPL: req.DescriptionPL,
		BasePriceUSD:  basePriceUSD,
		BasePricePLN:  basePricePLN,
		Discount:      req.Discount,
		Quantity:      quantity,
		WeightGrams:   req.WeightGrams,
		ColorEN:       req.ColorEN,
		ColorPL:       req.ColorPL,
		TagGUIDs:      tagGUIDs,
		CategoryGUID:  categoryGUID,
		BrandGUID:     brandGUID,
	}, nil
}

func addProductHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req productRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}
		in, err := req.toWrite()
		if err != nil {
			return writeError(c, logger, err)
		}

		item, err := svc.AddProduct(c.Request().Context(), in)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func updateProductHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		var req productRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		}
		in, err := req.toWrite()
		if err != nil {
			return writeError(c, logger, err)
		}

		item, err := svc.UpdateProduct(c.Request().Context(), db.ToPgUUID(guid), in)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func removeProductHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		if err := svc.RemoveProduct(c.Request().Context(), db.ToPgUUID(guid)); err != nil {
			return writeError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getProductHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		guid, err := parseGUID(c, "guid")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid guid"})
		}
		item, err := svc.GetProduct(c.Request().Context(), db.ToPgUUID(guid))
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func listProductsHandler(svc *service.Service, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageNumber, pageSize := pageParams(c)
		page, err := svc.ListProducts(c.Request().Context(), pageNumber, pageSize)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, page)
	}
}
