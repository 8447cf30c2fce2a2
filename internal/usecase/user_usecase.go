package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// UserUseCase реализует аутентификацию, регистрацию и профиль пользователя.
type UserUseCase struct {
	userRepo    UserRepository
	orderRepo   OrderRepository
	outboxRepo  OutboxRepository
	ordersCache OrdersCache
	trManager   TxManager
	logger      logger.Logger
}

func NewUserUC(
	userRepo UserRepository,
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	ordersCache OrdersCache,
	trManager TxManager,
	logger logger.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
		ordersCache: ordersCache,
		trManager:   trManager,
		logger:      logger,
	}
}

// Login проверяет имя пользователя и пароль и записывает событие входа.
func (u *UserUseCase) Login(ctx context.Context, req *LoginReq) (*domain.User, error) {
	const op = "UserUseCase.Login"

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, e.ErrNotFound) {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	err = u.trManager.Do(ctx, func(ctx context.Context) error {
		return appendEvent(ctx, u.outboxRepo, UserLoggedIn, user.ID, map[string]any{
			"user_id":  user.ID,
			"username": user.Username,
		})
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// Register валидирует форму, сохраняет нового пользователя и записывает событие регистрации.
func (u *UserUseCase) Register(ctx context.Context, req *RegisterReq) (*domain.User, error) {
	const op = "UserUseCase.Register"

	if err := validateRegistration(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	newUser := domain.NewUser(
		strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		string(hash),
	)

	var user *domain.User
	err = u.trManager.Do(ctx, func(ctx context.Context) error {
		created, err := u.userRepo.Create(ctx, newUser)
		if err != nil {
			return err
		}
		user = created

		return appendEvent(ctx, u.outboxRepo, UserRegistered, created.ID, map[string]any{
			"user_id":  created.ID,
			"username": created.Username,
			"email":    created.Email,
		})
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// GetProfile возвращает пользователя по идентификатору.
func (u *UserUseCase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "UserUseCase.GetProfile"

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// UpdateProfile обновляет редактируемые поля профиля.
func (u *UserUseCase) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileReq) (*domain.User, error) {
	const op = "UserUseCase.UpdateProfile"

	if err := validateProfile(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user.Username = strings.TrimSpace(req.Username)
	user.Email = strings.TrimSpace(req.Email)
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// ListOrders возвращает заказы пользователя, новые первыми.
// Список кэшируется; ошибки кэша не прерывают запрос.
func (u *UserUseCase) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	const op = "UserUseCase.ListOrders"

	cached, ok, err := u.ordersCache.GetOrders(ctx, userID)
	if err != nil {
		u.logger.Warnf("Failed to read orders from cache: %v", e.Wrap(op, err))
	}
	if ok {
		return cached, nil
	}

	orders, err := u.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := u.ordersCache.SetOrders(ctx, userID, orders); err != nil {
		u.logger.Warnf("Failed to cache orders: %v", e.Wrap(op, err))
	}

	return orders, nil
}

// validateRegistration проверяет поля формы регистрации.
func validateRegistration(req *RegisterReq) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" ||
		req.Password1 == "" || req.Password2 == "" {
		return e.ErrMissingFields
	}

	if !validEmail(req.Email) {
		return e.ErrInvalidEmail
	}

	if req.Password1 != req.Password2 {
		return e.ErrPasswordMismatch
	}

	if len(req.Password1) < minPasswordLen {
		return e.ErrPasswordTooShort
	}

	return nil
}

func validateProfile(req *UpdateProfileReq) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return e.ErrMissingFields
	}

	if !validEmail(req.Email) {
		return e.ErrInvalidEmail
	}

	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address == strings.TrimSpace(email)
}
