// Package handler wires the C5 orchestrator, C8 search service, and C(image
// upload) storage gateway onto Echo routes, mapping the catalogerr taxonomy
// to HTTP status codes per the error-kind table. Structured after the
// teacher's discovery-service handler package: one file per resource group,
// a shared RegisterRoutes entry point, thin per-route closures over the
// service layer.
package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/search"
	"github.com/shopery/catalog-bridge/internal/catalog/service"
	"github.com/shopery/catalog-bridge/internal/catalog/storage"
	"github.com/shopery/catalog-bridge/internal/platform/httpmw"
)

// RegisterRoutes mounts every catalog-bridge HTTP endpoint onto e. Called
// once from cmd/api/main.go.
func RegisterRoutes(e *echo.Echo, svc *service.Service, searchSvc *search.Service, images *storage.Gateway, corsOrigins []string, logger *zap.Logger) {
	e.HideBanner = true
	e.Use(otelecho.Middleware("catalog-bridge"))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: corsOrigins}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(httpmw.WithRequestID(c.Request().Context(), id)))
		},
	}))
	e.Use(httpmw.NullToEmptyArray())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{zap.String("uri", v.URI), zap.Int("status", v.Status)}
			if id, ok := httpmw.GetRequestID(c.Request().Context()); ok {
				fields = append(fields, zap.String("request_id", id))
			}
			logger.Info("HTTP request", fields...)
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	bg := e.Group("/brands")
	bg.POST("", addBrandHandler(svc, logger))
	bg.GET("", listBrandsHandler(svc, logger))
	bg.GET("/:guid", getBrandHandler(svc, logger))
	bg.PUT("/:guid", updateBrandHandler(svc, logger))
	bg.DELETE("/:guid", removeBrandHandler(svc, logger))

	cg := e.Group("/categories")
	cg.POST("", addCategoryHandler(svc, logger))
	cg.GET("", listCategoriesHandler(svc, logger))
	cg.GET("/:guid", getCategoryHandler(svc, logger))
	cg.PUT("/:guid", updateCategoryHandler(svc, logger))
	cg.DELETE("/:guid", removeCategoryHandler(svc, logger))

	tg := e.Group("/tags")
	tg.POST("", addTagHandler(svc, logger))
	tg.GET("", listTagsHandler(svc, logger))
	tg.GET("/:guid", getTagHandler(svc, logger))
	tg.DELETE("/:guid", removeTagHandler(svc, logger))

	pg := e.Group("/products")
	pg.POST("", addProductHandler(svc, logger))
	pg.GET("", listProductsHandler(svc, logger))
	pg.GET("/:guid", getProductHandler(svc, logger))
	pg.PUT("/:guid", updateProductHandler(svc, logger))
	pg.DELETE("/:guid", removeProductHandler(svc, logger))

	e.POST("/product-images", uploadImageHandler(images, storage.BucketProductImages, logger))
	e.POST("/brand-logos", uploadImageHandler(images, storage.BucketBrandLogos, logger))

	e.GET("/offer", searchHandler(searchSvc, logger))
}

// writeError maps a catalogerr.Error to its HTTP status code per §7's error
// taxonomy table; anything else is an unexpected 500.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	var ce *catalogerr.Error
	if !errors.As(err, &ce) {
		logger.Error("unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}

	status := http.StatusInternalServerError
	switch ce.Kind {
	case catalogerr.KindValidation, catalogerr.KindAlreadyExists, catalogerr.KindReferenceNotFound,
		catalogerr.KindInUse, catalogerr.KindFileFormat, catalogerr.KindFileTooLarge:
		status = http.StatusBadRequest
	case catalogerr.KindNotFound:
		status = http.StatusNotFound
	case catalogerr.KindStorageUnavailable:
		status = http.StatusServiceUnavailable
	case catalogerr.KindTransientStorage, catalogerr.KindBrokerUnavailable:
		status = http.StatusInternalServerError
	}
	return c.JSON(status, map[string]string{"detail": ce.Error()})
}

func parseGUID(c echo.Context, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(param))
}

func pageParams(c echo.Context) (pageNumber, pageSize int) {
	pageNumber = queryInt(c, "page_number", 0)
	pageSize = queryInt(c, "page_size", 20)
	return
}

func queryInt(c echo.Context, key string, fallback int) int {
	v := c.QueryParam(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}
