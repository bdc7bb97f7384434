package domain

type PreferredMethod string

const (
	MethodPickup   PreferredMethod = "pickup"
	MethodDelivery PreferredMethod = "delivery"
)

type OrderItem struct {
	ItemName string
	Quantity int
	Notes    *string
}

// Order is stored in the "order" collection. Items are embedded by value;
// ItemName is a free-text copy, not a reference to a menu document.
type Order struct {
	CustomerName    string
	Phone           string
	Email           *string
	PreferredMethod PreferredMethod
	Items           []OrderItem
	PickupTime      *string
	Address         *string
	Remarks         *string
}

func (o Order) Document() map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"item_name": it.ItemName,
			"quantity":  it.Quantity,
			"notes":     optionalString(it.Notes),
		})
	}

	return map[string]any{
		"customer_name":    o.CustomerName,
		"phone":            o.Phone,
		"email":            optionalString(o.Email),
		"preferred_method": string(o.PreferredMethod),
		"items":            items,
		"pickup_time":      optionalString(o.PickupTime),
		"address":          optionalString(o.Address),
		"remarks":          optionalString(o.Remarks),
	}
}
