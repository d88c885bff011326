package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

// Query is the structured predicate accepted by the search service (§4.6).
// Zero-valued fields are omitted from the FT.SEARCH query string.
type Query struct {
	Text             string // free-text match on names/descriptions
	CategoryGUID     string
	BrandGUID        string
	TagEN            string
	ColorEN          string
	MinDiscountedUSD string
	MaxDiscountedUSD string
	PageNumber       int
	PageSize         int
}

// Result is the raw page returned from the index before the search service
// adapts it into dto.Page.
type Result struct {
	Total int
	Items []projection.ProductUpdated
}

// Search runs an FT.SEARCH against idx:products. With a text predicate the
// results are ordered by relevance only; without one, by discounted_price_usd
// ascending. Results of equal relevance are not ordered by price.
func (g *RedisGateway) Search(ctx context.Context, q Query) (Result, error) {
	expr := buildExpr(q)

	offset := q.PageNumber * q.PageSize
	args := []any{
		"FT.SEARCH", IndexName, expr,
		"LIMIT", offset, q.PageSize,
	}
	// SORTBY replaces the relevance score entirely, so the price sort only
	// applies when there is no text predicate to rank by (§4.6: relevance
	// first, then discounted price ascending).
	if q.Text == "" {
		args = append(args, "SORTBY", "discounted_price_usd", "ASC")
	}

	raw, err := g.rdb.Do(ctx, args...).Result()
	if err != nil {
		return Result{}, fmt.Errorf("FT.SEARCH: %w", err)
	}
	return parseSearchReply(raw)
}

// buildExpr renders a Query into a RediSearch query string. An empty Query
// matches everything via the "*" wildcard.
func buildExpr(q Query) string {
	var parts []string
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("(%s)", escapeText(q.Text)))
	}
	if q.CategoryGUID != "" {
		parts = append(parts, fmt.Sprintf("@category_guid:{%s}", escapeTag(q.CategoryGUID)))
	}
	if q.BrandGUID != "" {
		parts = append(parts, fmt.Sprintf("@brand_guid:{%s}", escapeTag(q.BrandGUID)))
	}
	if q.TagEN != "" {
		parts = append(parts, fmt.Sprintf("@tag_en:{%s}", escapeTag(q.TagEN)))
	}
	if q.ColorEN != "" {
		parts = append(parts, fmt.Sprintf("@color_en:{%s}", escapeTag(q.ColorEN)))
	}
	if q.MinDiscountedUSD != "" || q.MaxDiscountedUSD != "" {
		lo := "-inf"
		if q.MinDiscountedUSD != "" {
			lo = q.MinDiscountedUSD
		}
		hi := "+inf"
		if q.MaxDiscountedUSD != "" {
			hi = q.MaxDiscountedUSD
		}
		parts = append(parts, fmt.Sprintf("@discounted_price_usd:[%s %s]", lo, hi))
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func escapeText(s string) string {
	return strings.NewReplacer(`"`, `\"`).Replace(s)
}

func escapeTag(s string) string {
	replacer := strings.NewReplacer(
		"-", "\\-", " ", "\\ ", ".", "\\.", ",", "\\,",
	)
	return replacer.Replace(s)
}

// parseSearchReply decodes go-redis's generic reply for FT.SEARCH: a flat
// array of [total, key1, fields1, key2, fields2, ...] where fieldsN is
// itself a flat [name, value, name, value, ...] array. Every JSON-backed
// document exposes its whole body under the synthetic "$" field name.
func parseSearchReply(raw any) (Result, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return Result{}, nil
	}

	total, err := toInt(arr[0])
	if err != nil {
		return Result{}, fmt.Errorf("parse total: %w", err)
	}

	var items []projection.ProductUpdated
	for i := 1; i+1 < len(arr); i += 2 {
		fields, ok := arr[i+1].([]any)
		if !ok {
			continue
		}
		doc, ok := fieldValue(fields, "$")
		if !ok {
			continue
		}
		var p projection.ProductUpdated
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			continue
		}
		items = append(items, p)
	}

	return Result{Total: total, Items: items}, nil
}

func fieldValue(fields []any, name string) (string, bool) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, _ := fields[i].(string)
		if key == name {
			val, _ := fields[i+1].(string)
			return val, true
		}
	}
	return "", false
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		var n int
		_, err := fmt.Sscanf(t, "%d", &n)
		return n, err
	default:
		return 0, fmt.Errorf("unexpected total type %T", v)
	}
}
