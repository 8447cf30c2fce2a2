package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product описывает товар каталога
type Product struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	Image        string          // Ключ объекта в S3
	ImageURL     string          // Presigned-ссылка, заполняется при выдаче страницы
	Price        int64           // Цена хранится в копейках
	Discount     decimal.Decimal // Скидка в процентах
	Quantity     int
	CategoryID   int64
	CategoryName string
}

// OnSale сообщает, действует ли на товар скидка.
func (p *Product) OnSale() bool {
	return p.Discount.IsPositive()
}

// SellPrice возвращает цену со скидкой в копейках.
func (p *Product) SellPrice() int64 {
	if !p.OnSale() {
		return p.Price
	}

	price := decimal.NewFromInt(p.Price)
	off := price.Mul(p.Discount).Div(hundred)

	return price.Sub(off).Round(0).IntPart()
}

// DisplayID возвращает артикул товара для витрины.
func (p *Product) DisplayID() string {
	return fmt.Sprintf("%05d", p.ID)
}

// FormatPrice переводит копейки в строку вида "1234.50".
func FormatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
