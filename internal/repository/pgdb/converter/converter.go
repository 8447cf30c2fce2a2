package converter

import (
	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToEntity(model *CategoryModel) *domain.Category
	ToArrEntity(models []CategoryModel) []domain.Category
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter interface {
	ToModel(entity *domain.User) *UserModel
	ToEntity(model *UserModel) *domain.User
}

// CartConverter собирает корзину из записи carts и её позиций.
type CartConverter interface {
	ToEntity(model *CartModel, items []CartItemModel) *domain.Cart
}

// OrderConverter собирает заказ из записи orders и его позиций.
type OrderConverter interface {
	ToEntity(model *OrderModel, items []OrderItemModel) *domain.Order
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:           model.ID,
		Name:         model.Name,
		Slug:         model.Slug,
		Description:  model.Description,
		Image:        model.Image,
		Price:        model.Price,
		Discount:     ConvertDiscount(model.Discount),
		Quantity:     model.Quantity,
		CategoryID:   model.CategoryID,
		CategoryName: model.CategoryName,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

type CategoryConverterImpl struct{}

func (c *CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	if model == nil {
		return nil
	}

	return &domain.Category{ID: model.ID, Name: model.Name, Slug: model.Slug}
}

func (c *CategoryConverterImpl) ToArrEntity(models []CategoryModel) []domain.Category {
	result := make([]domain.Category, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

type UserConverterImpl struct{}

func (c *UserConverterImpl) ToModel(entity *domain.User) *UserModel {
	if entity == nil {
		return nil
	}

	return &UserModel{
		ID:           entity.ID,
		Username:     entity.Username,
		Email:        entity.Email,
		FirstName:    entity.FirstName,
		LastName:     entity.LastName,
		PasswordHash: entity.PasswordHash,
		CreatedAt:    entity.CreatedAt,
	}
}

func (c *UserConverterImpl) ToEntity(model *UserModel) *domain.User {
	if model == nil {
		return nil
	}

	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}

type CartConverterImpl struct {
	Products ProductConverter
}

func (c *CartConverterImpl) ToEntity(model *CartModel, items []CartItemModel) *domain.Cart {
	if model == nil {
		return nil
	}

	cart := &domain.Cart{
		ID:         model.ID,
		UserID:     model.UserID,
		SessionKey: model.SessionKey,
		CreatedAt:  model.CreatedAt,
		Items:      make([]domain.CartItem, 0, len(items)),
	}
	for i := range items {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       items[i].ID,
			CartID:   items[i].CartID,
			Product:  *c.Products.ToEntity(&items[i].Product),
			Quantity: items[i].Quantity,
		})
	}

	return cart
}

type OrderConverterImpl struct{}

func (c *OrderConverterImpl) ToEntity(model *OrderModel, items []OrderItemModel) *domain.Order {
	if model == nil {
		return nil
	}

	order := &domain.Order{
		ID:        model.ID,
		UserID:    model.UserID,
		Status:    model.Status,
		IsPaid:    model.IsPaid,
		CreatedAt: model.CreatedAt,
		Items:     make([]domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		product := domain.Product{Name: item.Name, Price: item.Price}
		if item.ProductID != nil {
			product.ID = *item.ProductID
		}
		if item.ProductSlug != nil {
			product.Slug = *item.ProductSlug
		}
		if item.Image != nil {
			product.Image = *item.Image
		}

		order.Items = append(order.Items, domain.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			Product:  product,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return order
}

type OutboxEventConverterImpl struct{}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}
	return result
}

// ConvertDiscount разбирает значение numeric из БД. Некорректное значение считается нулевой скидкой.
func ConvertDiscount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
