package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMalformedDocument is returned by the document decoders when a stored
// document lacks a required field or holds a value of the wrong type.
var ErrMalformedDocument = errors.New("malformed document")

type MenuCategory string

const (
	CategoryCoffee    MenuCategory = "coffee"
	CategoryDrip      MenuCategory = "drip"
	CategorySignature MenuCategory = "signature"
	CategorySeasonal  MenuCategory = "seasonal"
	CategoryPack      MenuCategory = "pack"
	CategoryOther     MenuCategory = "other"
)

type MenuSize string

const (
	SizeSmall  MenuSize = "small"
	SizeLarge  MenuSize = "large"
	SizeBottle MenuSize = "bottle"
	SizePack   MenuSize = "pack"
)

// CafeMenuItem is stored in the "cafemenuitem" collection.
type CafeMenuItem struct {
	Name        string
	Category    MenuCategory
	Description *string
	Size        *MenuSize
	Price       int
	Available   bool
}

func (m CafeMenuItem) Document() map[string]any {
	var size any
	if m.Size != nil {
		size = string(*m.Size)
	}

	return map[string]any{
		"name":        m.Name,
		"category":    string(m.Category),
		"description": optionalString(m.Description),
		"size":        size,
		"price":       m.Price,
		"available":   m.Available,
	}
}

// DecodeCafeMenuItem maps a stored document onto a CafeMenuItem. A missing
// price decodes as 0 and a missing available flag as true.
func DecodeCafeMenuItem(doc map[string]any) (CafeMenuItem, error) {
	var item CafeMenuItem

	name, err := requiredString(doc, "name")
	if err != nil {
		return item, err
	}
	category, err := requiredString(doc, "category")
	if err != nil {
		return item, err
	}
	description, err := nullableString(doc, "description")
	if err != nil {
		return item, err
	}
	size, err := nullableString(doc, "size")
	if err != nil {
		return item, err
	}
	price, err := coerceInt(doc["price"])
	if err != nil {
		return item, fmt.Errorf("%w: field %q: %v", ErrMalformedDocument, "price", err)
	}

	item.Name = name
	item.Category = MenuCategory(category)
	item.Description = description
	if size != nil {
		s := MenuSize(*size)
		item.Size = &s
	}
	item.Price = price
	item.Available = coerceBool(doc["available"], true)

	return item, nil
}

func requiredString(doc map[string]any, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedDocument, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrMalformedDocument, key, v)
	}
	return s, nil
}

func nullableString(doc map[string]any, key string) (*string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is %T, want string", ErrMalformedDocument, key, v)
	}
	return &s, nil
}

// coerceInt accepts every numeric representation the backends hand back:
// int32/int64 from BSON, float64 from JSON columns, and numeric strings.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float32:
		return int(math.Trunc(float64(n))), nil
	case float64:
		return int(math.Trunc(n)), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n)
		}
		return i, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func coerceBool(v any, fallback bool) bool {
	switch b := v.(type) {
	case nil:
		return fallback
	case bool:
		return b
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		return b != ""
	default:
		return true
	}
}

func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
