package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/storage"
)

// uploadImageHandler accepts a multipart "file" field and stores it under
// bucket, keyed by a freshly minted guid alone; the upload's own file name
// and extension are not used (§6: product-images / brand-logos).
func uploadImageHandler(images *storage.Gateway, bucket string, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "missing file field"})
		}

		f, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "cannot open uploaded file"})
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "cannot read uploaded file"})
		}

		contentType := fileHeader.Header.Get("Content-Type")
		key := uuid.New().String()

		url, err := images.Upload(c.Request().Context(), bucket, key, contentType, data)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, map[string]string{"url": url})
	}
}
