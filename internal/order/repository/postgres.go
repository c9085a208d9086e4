package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/martshift/dashboard-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListSince(ctx context.Context, from time.Time) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.DB.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE created_at >= $1 ORDER BY created_at ASC`, from)
	return orders, err
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (id, total_amount, item_count, source, created_at)
        VALUES (:id, :total_amount, :item_count, :source, :created_at)
        ON CONFLICT (id) DO NOTHING
    `
	// ON CONFLICT keeps kafka redelivery idempotent
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) ListRange(ctx context.Context, from, to time.Time, page, pageSize int) ([]model.Order, int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE created_at >= $1 AND created_at < $2`, from, to)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM orders WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC`
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	orders := []model.Order{}
	err = r.DB.SelectContext(ctx, &orders, query, from, to)
	return orders, count, err
}
