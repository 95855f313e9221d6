package repository

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

type PGUserRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_admin, created_at, updated_at`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, first_name, last_name, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return wrapErr("create user", "user", err)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, wrapErr("get user", "user", err)
	}
	return u, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if err != nil {
		return nil, wrapErr("get user", "user", err)
	}
	return u, nil
}

func (r *PGUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `UPDATE users SET email=$2, first_name=$3, last_name=$4, updated_at=now()
		WHERE id=$1 RETURNING updated_at`, user.ID, user.Email, user.FirstName, user.LastName).
		Scan(&user.UpdatedAt)
	return wrapErr("update user", "user", err)
}

var _ UserRepository = (*PGUserRepository)(nil)
