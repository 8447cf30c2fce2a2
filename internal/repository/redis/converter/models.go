package converter

import "time"

// OrderRedisModel — заказ в кэше списка заказов пользователя.
type OrderRedisModel struct {
	ID        int64                 `json:"id"`
	UserID    int64                 `json:"user_id"`
	Status    string                `json:"status"`
	IsPaid    bool                  `json:"is_paid"`
	CreatedAt time.Time             `json:"created_at"`
	Items     []OrderItemRedisModel `json:"items"`
}

type OrderItemRedisModel struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	ProductID   int64  `json:"product_id"`
	ProductSlug string `json:"product_slug"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}
