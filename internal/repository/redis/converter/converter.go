package converter

import "github.com/DRSN-tech/home-store/internal/domain"

// OrderConverter преобразует заказы между domain и моделью кэша.
type OrderConverter interface {
	ToArrRedisModel(entities []domain.Order) []OrderRedisModel
	ToArrEntity(models []OrderRedisModel) []domain.Order
}

type OrderConverterImpl struct{}

func (c *OrderConverterImpl) ToArrRedisModel(entities []domain.Order) []OrderRedisModel {
	result := make([]OrderRedisModel, 0, len(entities))
	for _, order := range entities {
		model := OrderRedisModel{
			ID:        order.ID,
			UserID:    order.UserID,
			Status:    order.Status,
			IsPaid:    order.IsPaid,
			CreatedAt: order.CreatedAt,
			Items:     make([]OrderItemRedisModel, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			model.Items = append(model.Items, OrderItemRedisModel{
				ID:          item.ID,
				OrderID:     item.OrderID,
				ProductID:   item.Product.ID,
				ProductSlug: item.Product.Slug,
				Image:       item.Product.Image,
				Name:        item.Name,
				Price:       item.Price,
				Quantity:    item.Quantity,
			})
		}
		result = append(result, model)
	}
	return result
}

func (c *OrderConverterImpl) ToArrEntity(models []OrderRedisModel) []domain.Order {
	result := make([]domain.Order, 0, len(models))
	for _, model := range models {
		order := domain.Order{
			ID:        model.ID,
			UserID:    model.UserID,
			Status:    model.Status,
			IsPaid:    model.IsPaid,
			CreatedAt: model.CreatedAt,
			Items:     make([]domain.OrderItem, 0, len(model.Items)),
		}
		for _, item := range model.Items {
			order.Items = append(order.Items, domain.OrderItem{
				ID:      item.ID,
				OrderID: item.OrderID,
				Product: domain.Product{
					ID:    item.ProductID,
					Slug:  item.ProductSlug,
					Image: item.Image,
					Name:  item.Name,
					Price: item.Price,
				},
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}
		result = append(result, order)
	}
	return result
}
