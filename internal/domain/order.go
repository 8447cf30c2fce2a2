package domain

import "time"

// Order описывает оформленный заказ пользователя
type Order struct {
	ID        int64
	UserID    int64
	Status    string
	IsPaid    bool
	CreatedAt time.Time
	Items     []OrderItem
}

// OrderItem — позиция заказа, цена зафиксирована на момент оформления
type OrderItem struct {
	ID       int64
	OrderID  int64
	Product  Product
	Name     string
	Price    int64 // в копейках
	Quantity int
}

// TotalPrice возвращает стоимость заказа в копейках.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
