package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, image_url, image_object_key, caption)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.ImageURL, p.ImageObjectKey, p.Caption)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// postSelect joins author profile and like count onto every post row.
const postSelect = `
	SELECT p.id, p.user_id, p.image_url, p.image_object_key, p.caption,
	       p.created_at, p.updated_at,
	       u.username, u.full_name, u.profile_picture,
	       (SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{Author: &entity.Profile{}}
	if err := row.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.ImageObjectKey, &p.Caption,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.Username, &p.Author.FullName, &p.Author.ProfilePicture,
		&p.LikesCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Author.ID = p.UserID
	return p, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
}

func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]entity.Post, error) {
	return r.queryPosts(ctx, postSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]entity.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
}

func (r *PostRepository) Feed(ctx context.Context, userID string, limit int) ([]entity.Post, error) {
	return r.queryPosts(ctx, postSelect+`
		WHERE p.user_id = $1
		   OR p.user_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC
		LIMIT $2
	`, userID, limit)
}

// Delete removes the post, its comments and its likes in one transaction.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PostRepository) Like(ctx context.Context, postID, userID string) (int, error) {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, postID, userID)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected() == 0 {
		return 0, repository.ErrDuplicate
	}
	return r.likesCount(ctx, postID)
}

func (r *PostRepository) Unlike(ctx context.Context, postID, userID string) (int, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected() == 0 {
		return 0, repository.ErrNotFound
	}
	return r.likesCount(ctx, postID)
}

func (r *PostRepository) likesCount(ctx context.Context, postID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM post_likes WHERE post_id = $1
	`, postID).Scan(&n)
	return n, err
}

func (r *PostRepository) Likers(ctx context.Context, postID string) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.full_name, u.profile_picture
		FROM post_likes pl
		JOIN users u ON u.id = pl.user_id
		WHERE pl.post_id = $1
		ORDER BY pl.created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]entity.Profile, 0)
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.FullName, &p.ProfilePicture); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...any) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]entity.Post, 0)
	for rows.Next() {
		p := entity.Post{Author: &entity.Profile{}}
		if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.ImageObjectKey, &p.Caption,
			&p.CreatedAt, &p.UpdatedAt,
			&p.Author.Username, &p.Author.FullName, &p.Author.ProfilePicture,
			&p.LikesCount); err != nil {
			return nil, err
		}
		p.Author.ID = p.UserID
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
