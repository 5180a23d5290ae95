package models

import (
	"fmt"
	"strings"

	"holidaze-server/internaltypes"
)

const (
	SortCreated = "created"
	SortPrice   = "price"
	SortRating  = "rating"
	SortName    = "name"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort is the field/direction pair sent upstream.
type Sort struct {
	Field string `json:"sort"`
	Order string `json:"sortOrder"`
}

// DefaultSort lists the newest venues first.
var DefaultSort = Sort{Field: SortCreated, Order: OrderDesc}

// sortPresets are the choices offered by the listing's sort select.
var sortPresets = map[string]Sort{
	"newDesc":   {Field: SortCreated, Order: OrderDesc},
	"newAsc":    {Field: SortCreated, Order: OrderAsc},
	"priceAsc":  {Field: SortPrice, Order: OrderAsc},
	"priceDesc": {Field: SortPrice, Order: OrderDesc},
}

// ParseSort resolves either a preset name ("priceAsc") or an explicit
// field and order. Empty input yields DefaultSort.
func ParseSort(field, order string) (Sort, error) {
	field, order = strings.TrimSpace(field), strings.ToLower(strings.TrimSpace(order))
	if p, ok := sortPresets[field]; ok && order == "" {
		return p, nil
	}
	if field == "" {
		field = DefaultSort.Field
	}
	switch field {
	case SortCreated, SortPrice, SortRating, SortName:
	default:
		return Sort{}, internaltypes.NewValidationError(fmt.Sprintf("unknown sort field %q", field))
	}
	switch order {
	case "":
		order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return Sort{}, internaltypes.NewValidationError(fmt.Sprintf("unknown sort order %q", order))
	}
	return Sort{Field: field, Order: order}, nil
}
