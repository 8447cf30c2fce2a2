package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
)

// CartUseCase управляет корзинами и их переносом при входе пользователя.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	trManager   TxManager
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	trManager TxManager,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		trManager:   trManager,
		logger:      logger,
	}
}

// MigrateSessionCart переносит корзину анонимной сессии на пользователя.
// Если у сессии корзины нет, у пользователя остаётся его прежняя корзина.
// Иначе прежняя корзина пользователя удаляется, а корзина сессии переходит к нему.
// Всё выполняется в одной транзакции.
func (c *CartUseCase) MigrateSessionCart(ctx context.Context, sessionKey string, userID int64) error {
	const op = "CartUseCase.MigrateSessionCart"

	if sessionKey == "" {
		return nil
	}

	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		sessionCart, err := c.cartRepo.GetBySessionKey(ctx, sessionKey)
		if errors.Is(err, e.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.cartRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		if err := c.cartRepo.AssignToUser(ctx, sessionCart.ID, userID); err != nil {
			return err
		}

		return appendEvent(ctx, c.outboxRepo, CartMigrated, userID, map[string]any{
			"user_id": userID,
			"cart_id": sessionCart.ID,
			"items":   len(sessionCart.Items),
		})
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetCart возвращает корзину владельца; если корзины нет — пустую.
func (c *CartUseCase) GetCart(ctx context.Context, owner CartOwner) (*domain.Cart, error) {
	const op = "CartUseCase.GetCart"

	if owner.IsEmpty() {
		return &domain.Cart{}, nil
	}

	cart, err := c.getCart(ctx, owner)
	if errors.Is(err, e.ErrNotFound) {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return cart, nil
}

// AddProduct добавляет единицу товара в корзину владельца, создавая корзину при необходимости.
func (c *CartUseCase) AddProduct(ctx context.Context, owner CartOwner, productSlug string) (*domain.Cart, error) {
	const op = "CartUseCase.AddProduct"

	if owner.IsEmpty() {
		return nil, e.Wrap(op, e.ErrNoCartOwner)
	}

	product, err := c.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var cart *domain.Cart
	err = c.trManager.Do(ctx, func(ctx context.Context) error {
		cart, err = c.getCart(ctx, owner)
		if errors.Is(err, e.ErrNotFound) {
			cart, err = c.cartRepo.Create(ctx, owner)
		}
		if err != nil {
			return err
		}

		if err := c.cartRepo.AddItem(ctx, cart.ID, product.ID, 1); err != nil {
			return err
		}

		cart, err = c.getCart(ctx, owner)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return cart, nil
}

// RemoveItem удаляет позицию из корзины владельца.
func (c *CartUseCase) RemoveItem(ctx context.Context, owner CartOwner, itemID int64) error {
	const op = "CartUseCase.RemoveItem"

	if owner.IsEmpty() {
		return e.Wrap(op, e.ErrNoCartOwner)
	}

	cart, err := c.getCart(ctx, owner)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := c.cartRepo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *CartUseCase) getCart(ctx context.Context, owner CartOwner) (*domain.Cart, error) {
	if owner.IsUser() {
		return c.cartRepo.GetByUserID(ctx, owner.UserID)
	}
	return c.cartRepo.GetBySessionKey(ctx, owner.SessionKey)
}
