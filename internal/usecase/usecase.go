package usecase

import (
	"context"

	"github.com/DRSN-tech/home-store/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ProductsPage, error)
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type UserUC interface {
	Login(ctx context.Context, req *LoginReq) (*domain.User, error)
	Register(ctx context.Context, req *RegisterReq) (*domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileReq) (*domain.User, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type CartUC interface {
	MigrateSessionCart(ctx context.Context, sessionKey string, userID int64) error
	GetCart(ctx context.Context, owner CartOwner) (*domain.Cart, error)
	AddProduct(ctx context.Context, owner CartOwner, productSlug string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner CartOwner, itemID int64) error
}
