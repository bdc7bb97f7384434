package dto

const OrderStatusOK = "ok"

type CreateOrderResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}
