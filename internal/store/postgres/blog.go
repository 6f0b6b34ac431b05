package postgres

import (
	"context"
	"database/sql"

	"github.com/blood-heros/apiserver/types"
)

const blogColumns = `id, title, thumbnail, content, author_email, status, created_at`

// BlogRepository handles persistence for blogs.
type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) list(ctx context.Context, query string, args ...any) ([]types.Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]types.Blog, 0)
	for rows.Next() {
		var blog types.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Thumbnail,
			&blog.Content,
			&blog.AuthorEmail,
			&blog.Status,
			&blog.CreatedAt,
		); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]types.Blog, error) {
	return r.list(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at`)
}

func (r *BlogRepository) ListByStatus(ctx context.Context, status string) ([]types.Blog, error) {
	return r.list(ctx, `SELECT `+blogColumns+` FROM blogs WHERE status = $1 ORDER BY created_at`, status)
}

func (r *BlogRepository) Create(ctx context.Context, blog types.Blog) (types.Blog, error) {
	blog.ID = newID()

	const query = `
		INSERT INTO blogs (id, title, thumbnail, content, author_email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		blog.ID,
		blog.Title,
		blog.Thumbnail,
		blog.Content,
		blog.AuthorEmail,
		blog.Status,
		blog.CreatedAt,
	); err != nil {
		return types.Blog{}, translate(err)
	}
	return blog, nil
}

func (r *BlogRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	if err := validID(id); err != nil {
		return types.UpdateResult{}, err
	}
	const query = `UPDATE blogs SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return types.UpdateResult{}, err
	}
	return updateResult(result)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	if err := validID(id); err != nil {
		return types.DeleteResult{}, err
	}
	const query = `DELETE FROM blogs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return types.DeleteResult{}, err
	}
	return deleteResult(result)
}
