package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/martshift/dashboard-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users,
		`SELECT id, name, role, status, created_at, updated_at FROM users WHERE role = $1 ORDER BY name ASC`, role)
	return users, err
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users,
		`SELECT id, name, email, role, status, created_at, updated_at FROM users ORDER BY name ASC`)
	return users, err
}
