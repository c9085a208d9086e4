package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/martshift/dashboard-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) List(ctx context.Context) ([]model.Announcement, error) {
	items := []model.Announcement{}
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM announcements ORDER BY pinned DESC, created_at DESC`)
	return items, err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.DB.GetContext(ctx, &a, `SELECT * FROM announcements WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) Create(ctx context.Context, a *model.Announcement) error {
	query := `
        INSERT INTO announcements (id, title, body, author_id, pinned, created_at, updated_at)
        VALUES (:id, :title, :body, :author_id, :pinned, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) Update(ctx context.Context, a *model.Announcement) error {
	query := `
        UPDATE announcements SET
            title = :title,
            body = :body,
            pinned = :pinned,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}
