// Package search implements the search service (C8): a paginated, filtered
// query against the document store's index (§4.6).
package search

import (
	"context"
	"fmt"

	"github.com/shopery/catalog-bridge/internal/catalog/docstore"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

const (
	minPageSize = 1
	maxPageSize = 100
)

// Filter is the caller-facing structured predicate (§4.6), translated into
// a docstore.Query by the service.
type Filter struct {
	Text             string
	CategoryGUID     string
	BrandGUID        string
	TagEN            string
	ColorEN          string
	MinDiscountedUSD string
	MaxDiscountedUSD string
}

// Service is the C8 contract.
type Service struct {
	docs docstore.Gateway
}

// New constructs a search Service over a document store gateway.
func New(docs docstore.Gateway) *Service {
	return &Service{docs: docs}
}

// Search validates pagination inputs and returns a page of products.
// pageSize must be in [1,100]; pageNumber must be non-negative (§4.6).
func (s *Service) Search(ctx context.Context, pageNumber, pageSize int, filter Filter) (dto.Page[dto.ProductDetail], error) {
	if pageNumber < 0 {
		return dto.Page[dto.ProductDetail]{}, fmt.Errorf("page_number must be >= 0")
	}
	if pageSize < minPageSize || pageSize > maxPageSize {
		return dto.Page[dto.ProductDetail]{}, fmt.Errorf("page_size must be in [%d,%d]", minPageSize, maxPageSize)
	}

	result, err := s.docs.Search(ctx, docstore.Query{
		Text:             filter.Text,
		CategoryGUID:     filter.CategoryGUID,
		BrandGUID:        filter.BrandGUID,
		TagEN:            filter.TagEN,
		ColorEN:          filter.ColorEN,
		MinDiscountedUSD: filter.MinDiscountedUSD,
		MaxDiscountedUSD: filter.MaxDiscountedUSD,
		PageNumber:       pageNumber,
		PageSize:         pageSize,
	})
	if err != nil {
		return dto.Page[dto.ProductDetail]{}, fmt.Errorf("document store search: %w", err)
	}

	items := make([]dto.ProductDetail, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toProductDetail(p))
	}

	pagesCount := 0
	if result.Total > 0 {
		pagesCount = (result.Total + pageSize - 1) / pageSize
	}

	return dto.Page[dto.ProductDetail]{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		PagesCount: pagesCount,
		Total:      result.Total,
		Items:      items,
	}, nil
}

// toProductDetail adapts a projected document back into the HTTP-boundary
// DTO. Discounted prices are the search index's own sort/filter keys and
// are not re-exposed on ProductDetail, which mirrors the write-side view.
func toProductDetail(p projection.ProductUpdated) dto.ProductDetail {
	tags := make([]dto.TagItem, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, dto.TagItem{GUID: t.GUID, EN: t.EN, PL: t.PL})
	}

	return dto.ProductDetail{
		GUID:          p.GUID,
		SKU:           p.SKU,
		NameEN:        p.NameEN,
		NamePL:        p.NamePL,
		ImageURL:      p.ImageURL,
		DescriptionEN: p.DescriptionEN,
		DescriptionPL: p.DescriptionPL,
		BasePriceUSD:  p.BasePriceUSD,
		BasePricePLN:  p.BasePricePLN,
		Discount:      p.Discount,
		Quantity:      p.Quantity,
		WeightGrams:   p.WeightGrams,
		ColorEN:       p.ColorEN,
		ColorPL:       p.ColorPL,
		Tags:          tags,
		Category:      dto.CategoryItem{GUID: p.CategoryGUID, NameEN: p.CategoryNameEN, NamePL: p.CategoryNamePL},
		Brand:         dto.BrandItem{GUID: p.BrandGUID, Name: p.BrandName, LogoURL: p.BrandLogoURL},
	}
}
