package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PostID, c.UserID, c.Text)
	return row.Scan(&c.ID, &c.CreatedAt)
}

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.text, c.created_at,
	       u.username, u.full_name, u.profile_picture
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{Author: &entity.Profile{}}
	err := r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt,
		&c.Author.Username, &c.Author.FullName, &c.Author.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.Author.ID = c.UserID
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string, limit int) ([]entity.Comment, error) {
	sql := commentSelect + ` WHERE c.post_id = $1 ORDER BY c.created_at DESC`
	args := []any{postID}
	if limit > 0 {
		sql += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]entity.Comment, 0)
	for rows.Next() {
		c := entity.Comment{Author: &entity.Profile{}}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt,
			&c.Author.Username, &c.Author.FullName, &c.Author.ProfilePicture); err != nil {
			return nil, err
		}
		c.Author.ID = c.UserID
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
