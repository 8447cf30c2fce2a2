package domain

import "time"

// Cart описывает корзину. Владелец — либо анонимная сессия, либо пользователь.
type Cart struct {
	ID         int64
	UserID     *int64
	SessionKey *string
	Items      []CartItem
	CreatedAt  time.Time
}

// CartItem — позиция корзины
type CartItem struct {
	ID       int64
	CartID   int64
	Product  Product
	Quantity int
}

// Price возвращает стоимость позиции с учётом скидки в копейках.
func (i *CartItem) Price() int64 {
	return i.Product.SellPrice() * int64(i.Quantity)
}

// TotalPrice возвращает стоимость всей корзины в копейках.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].Price()
	}
	return total
}

// TotalQuantity возвращает количество единиц товара в корзине.
func (c *Cart) TotalQuantity() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
