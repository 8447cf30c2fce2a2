package pgdb

import (
	"context"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/tr"
	"github.com/jimlawless/whereami"
)

// OrderRepo читает заказы пользователей.
type OrderRepo struct {
	db   tr.Querier
	conv converter.OrderConverter
}

func NewOrderRepo(db tr.Querier, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{db: db, conv: conv}
}

// ListByUser возвращает заказы пользователя с позициями и товарами одним запросом, новые первыми.
func (o *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, o.is_paid, o.created_at,
		       oi.id, oi.name, oi.price, oi.quantity, oi.product_id, pr.slug, pr.image
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products pr ON pr.id = oi.product_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, oi.id
	`

	rows, err := tr.Conn(ctx, o.db).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var (
		orders []*converter.OrderModel
		items  = make(map[int64][]converter.OrderItemModel)
	)
	for rows.Next() {
		var (
			order    converter.OrderModel
			itemID   *int64
			name     *string
			price    *int64
			quantity *int
			item     converter.OrderItemModel
		)

		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.IsPaid, &order.CreatedAt,
			&itemID, &name, &price, &quantity, &item.ProductID, &item.ProductSlug, &item.Image,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if len(orders) == 0 || orders[len(orders)-1].ID != order.ID {
			orders = append(orders, &order)
		}

		// Заказ без позиций
		if itemID == nil {
			continue
		}

		item.ID, item.OrderID = *itemID, order.ID
		if name != nil {
			item.Name = *name
		}
		if price != nil {
			item.Price = *price
		}
		if quantity != nil {
			item.Quantity = *quantity
		}
		items[order.ID] = append(items[order.ID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, *o.conv.ToEntity(order, items[order.ID]))
	}

	return result, nil
}
