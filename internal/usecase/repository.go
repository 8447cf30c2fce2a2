package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/home-store/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type ProductRepository interface {
	Count(ctx context.Context, filter ProductFilter) (int, error)
	List(ctx context.Context, filter ProductFilter, order ProductOrder, limit, offset int) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

type CartRepository interface {
	GetBySessionKey(ctx context.Context, sessionKey string) (*domain.Cart, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error)
	// Create создаёт корзину владельца. Если корзина уже создана параллельным запросом, возвращает её.
	Create(ctx context.Context, owner CartOwner) (*domain.Cart, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	AssignToUser(ctx context.Context, cartID int64, userID int64) error
	AddItem(ctx context.Context, cartID int64, productID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID int64, itemID int64) error
}

type OrderRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}

// OrdersCache кэширует список заказов пользователя на ограниченное время.
type OrdersCache interface {
	GetOrders(ctx context.Context, userID int64) ([]domain.Order, bool, error)
	SetOrders(ctx context.Context, userID int64, orders []domain.Order) error
}

// ImageRepository подписывает ссылки на изображения в объектном хранилище.
type ImageRepository interface {
	PresignedURL(ctx context.Context, image *domain.Image, ttl time.Duration) (string, error)
}
