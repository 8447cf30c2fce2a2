package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/tr"
	"github.com/jimlawless/whereami"
)

const userColumns = "id, username, email, first_name, last_name, password_hash, created_at"

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	db   tr.Querier
	conv converter.UserConverter
}

func NewUserRepo(db tr.Querier, conv converter.UserConverter) *UserRepo {
	return &UserRepo{db: db, conv: conv}
}

// Create сохраняет пользователя. Занятое имя — e.ErrUsernameTaken.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const op = "UserRepo.Create"

	model := u.conv.ToModel(user)
	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`

	err := tr.Conn(ctx, u.db).QueryRow(ctx, query,
		model.Username,
		model.Email,
		model.FirstName,
		model.LastName,
		model.PasswordHash,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(op, fmt.Errorf("%q: %w", user.Username, e.ErrUsernameTaken))
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return u.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

// Update перезаписывает редактируемые поля профиля.
func (u *UserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	const op = "UserRepo.Update"

	model := u.conv.ToModel(user)
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4
		WHERE id = $5
		RETURNING ` + userColumns

	var out converter.UserModel
	err := tr.Conn(ctx, u.db).QueryRow(ctx, query,
		model.Username,
		model.Email,
		model.FirstName,
		model.LastName,
		model.ID,
	).Scan(userDest(&out)...)
	if err != nil {
		switch {
		case noRows(err):
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		case postgresDuplicate(err):
			return nil, e.Wrap(op, fmt.Errorf("%q: %w", user.Username, e.ErrUsernameTaken))
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&out), nil
}

func (u *UserRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var model converter.UserModel
	if err := tr.Conn(ctx, u.db).QueryRow(ctx, query, arg).Scan(userDest(&model)...); err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

func userDest(m *converter.UserModel) []any {
	return []any{&m.ID, &m.Username, &m.Email, &m.FirstName, &m.LastName, &m.PasswordHash, &m.CreatedAt}
}
