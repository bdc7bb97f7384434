// Package schema validates menu and order payloads before they reach the
// document store. Every violated constraint is reported as a
// ValidationDetail keyed by its JSON field path, e.g. "items[0].quantity".
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gayo/internal/domain"
	apperrors "gayo/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required,oneof=coffee drip signature seasonal pack other"`
	Description *string `json:"description"`
	Size        *string `json:"size" validate:"omitnil,oneof=small large bottle pack"`
	Price       *int    `json:"price" validate:"required,min=0"`
	Available   *bool   `json:"available" schema:"nonnull"`
}

type OrderItemRequest struct {
	ItemName *string `json:"item_name" validate:"required"`
	Quantity *int    `json:"quantity" validate:"omitnil,min=1" schema:"nonnull"`
	Notes    *string `json:"notes"`
}

type OrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required"`
	Phone           string             `json:"phone" validate:"required"`
	Email           *string            `json:"email" validate:"omitnil,email"`
	PreferredMethod *string            `json:"preferred_method" validate:"omitnil,oneof=pickup delivery" schema:"nonnull"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PickupTime      *string            `json:"pickup_time"`
	Address         *string            `json:"address"`
	Remarks         *string            `json:"remarks"`
}

// DecodeMenuItem reads a JSON menu item, validates it and applies defaults.
func DecodeMenuItem(r io.Reader) (domain.CafeMenuItem, error) {
	var req MenuItemRequest
	if err := decode(r, &req); err != nil {
		return domain.CafeMenuItem{}, err
	}
	return req.toDomain(), nil
}

// ValidateMenuItem applies the menu item constraints to an already typed value.
func ValidateMenuItem(item domain.CafeMenuItem) error {
	price := item.Price
	available := item.Available
	req := MenuItemRequest{
		Name:        item.Name,
		Category:    string(item.Category),
		Description: item.Description,
		Price:       &price,
		Available:   &available,
	}
	if item.Size != nil {
		size := string(*item.Size)
		req.Size = &size
	}
	return check(req)
}

// DecodeOrder reads a JSON order, validates it and applies defaults:
// preferred_method falls back to pickup and item quantity to 1 when the key
// is absent. An explicit null for either is rejected.
func DecodeOrder(r io.Reader) (domain.Order, error) {
	var req OrderRequest
	if err := decode(r, &req); err != nil {
		return domain.Order{}, err
	}
	return req.toDomain(), nil
}

func ValidateOrder(order domain.Order) error {
	method := string(order.PreferredMethod)
	req := OrderRequest{
		CustomerName:    order.CustomerName,
		Phone:           order.Phone,
		Email:           order.Email,
		PreferredMethod: &method,
		PickupTime:      order.PickupTime,
		Address:         order.Address,
		Remarks:         order.Remarks,
	}
	if order.Items != nil {
		req.Items = make([]OrderItemRequest, len(order.Items))
	}
	for i, it := range order.Items {
		name := it.ItemName
		qty := it.Quantity
		req.Items[i] = OrderItemRequest{ItemName: &name, Quantity: &qty, Notes: it.Notes}
	}
	return check(req)
}

func (req MenuItemRequest) toDomain() domain.CafeMenuItem {
	item := domain.CafeMenuItem{
		Name:        req.Name,
		Category:    domain.MenuCategory(req.Category),
		Description: req.Description,
		Price:       *req.Price,
		Available:   true,
	}
	if req.Size != nil {
		size := domain.MenuSize(*req.Size)
		item.Size = &size
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return item
}

func (req OrderRequest) toDomain() domain.Order {
	order := domain.Order{
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Email:           req.Email,
		PreferredMethod: domain.MethodPickup,
		Items:           make([]domain.OrderItem, 0, len(req.Items)),
		PickupTime:      req.PickupTime,
		Address:         req.Address,
		Remarks:         req.Remarks,
	}
	if req.PreferredMethod != nil {
		order.PreferredMethod = domain.PreferredMethod(*req.PreferredMethod)
	}
	for _, it := range req.Items {
		item := domain.OrderItem{ItemName: *it.ItemName, Quantity: 1, Notes: it.Notes}
		if it.Quantity != nil {
			item.Quantity = *it.Quantity
		}
		order.Items = append(order.Items, item)
	}
	return order
}

// decode fills dst one field at a time so every type mismatch is reported,
// then runs the validator over what decoded cleanly. Validator findings on a
// field that already failed to decode are dropped.
func decode(r io.Reader, dst any) error {
	raw, err := readBody(r)
	if err != nil {
		return err
	}

	typeDetails := decodeValue(raw, reflect.ValueOf(dst).Elem(), "")
	err = check(dst)
	if len(typeDetails) == 0 {
		return err
	}

	details := typeDetails
	if ve, ok := apperrors.IsValidationError(err); ok {
		for _, d := range ve.Details {
			if !covered(d.Field, typeDetails) {
				details = append(details, d)
			}
		}
	}
	return apperrors.NewValidationError("validation failed", details...)
}

func readBody(r io.Reader) (json.RawMessage, error) {
	var raw json.RawMessage
	err := json.NewDecoder(r).Decode(&raw)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return raw, nil
	case errors.As(err, &tooLarge):
		return nil, apperrors.NewPayloadTooLargeError(tooLarge.Limit)
	case errors.Is(err, io.EOF):
		return nil, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body is required",
		})
	default:
		return nil, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
}

// decodeValue decodes raw into v and returns one detail per value of the
// wrong JSON type. Struct fields tagged schema:"nonnull" reject an explicit
// null; other nulls leave the field unset.
func decodeValue(raw json.RawMessage, v reflect.Value, path string) []apperrors.ValidationDetail {
	switch {
	case v.Kind() == reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		details := decodeValue(raw, elem.Elem(), path)
		if len(details) == 0 {
			v.Set(elem)
		}
		return details

	case v.Kind() == reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return []apperrors.ValidationDetail{typeDetail(path, v.Type(), raw)}
		}

		var details []apperrors.ValidationDetail
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			value, ok := fields[name]
			if name == "" || !ok {
				continue
			}

			childPath := joinPath(path, name)
			if jsonKind(value) == "null" {
				if f.Tag.Get("schema") == "nonnull" {
					details = append(details, apperrors.ValidationDetail{
						Field:   childPath,
						Message: "must not be null",
					})
				}
				continue
			}
			details = append(details, decodeValue(value, v.Field(i), childPath)...)
		}
		return details

	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Struct:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return []apperrors.ValidationDetail{typeDetail(path, v.Type(), raw)}
		}

		var details []apperrors.ValidationDetail
		out := reflect.MakeSlice(v.Type(), len(elems), len(elems))
		for i, elem := range elems {
			details = append(details, decodeValue(elem, out.Index(i), fmt.Sprintf("%s[%d]", path, i))...)
		}
		v.Set(out)
		return details

	default:
		if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
			return []apperrors.ValidationDetail{typeDetail(path, v.Type(), raw)}
		}
		return nil
	}
}

func typeDetail(path string, want reflect.Type, raw json.RawMessage) apperrors.ValidationDetail {
	if path == "" {
		path = "body"
	}
	return apperrors.ValidationDetail{
		Field:   path,
		Message: fmt.Sprintf("must be %s, got %s", kindName(want), jsonKind(raw)),
	}
}

func covered(field string, details []apperrors.ValidationDetail) bool {
	for _, d := range details {
		if field == d.Field || strings.HasPrefix(field, d.Field+".") || strings.HasPrefix(field, d.Field+"[") {
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	details := make([]apperrors.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.ValidationDetail{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return apperrors.NewValidationError("validation failed", details...)
}

// fieldPath drops the root struct name validator prefixes to every namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Ptr:
		return kindName(t.Elem())
	default:
		return "a " + t.Kind().String()
	}
}
