package services

import (
	"context"
	"strings"
	"time"

	"github.com/blood-heros/apiserver/types"
)

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	List(ctx context.Context) ([]types.Blog, error)
	ListByStatus(ctx context.Context, status string) ([]types.Blog, error)
	Create(ctx context.Context, blog types.Blog) (types.Blog, error)
	SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error)
	Delete(ctx context.Context, id string) (types.DeleteResult, error)
}

// BlogService encapsulates blog use-cases.
type BlogService struct {
	repo BlogRepository
	now  func() time.Time
}

func NewBlogService(repo BlogRepository) *BlogService {
	return &BlogService{repo: repo, now: time.Now}
}

func (s *BlogService) List(ctx context.Context) ([]types.Blog, error) {
	return s.repo.List(ctx)
}

func (s *BlogService) ListPublished(ctx context.Context) ([]types.Blog, error) {
	return s.repo.ListByStatus(ctx, types.BlogStatusPublished)
}

// Create stores a new blog as a draft unless the writer already marked it
// published.
func (s *BlogService) Create(ctx context.Context, blog types.Blog) (types.Blog, error) {
	if strings.TrimSpace(blog.Title) == "" {
		return types.Blog{}, invalid("title is required")
	}
	switch blog.Status {
	case "":
		blog.Status = types.BlogStatusDraft
	case types.BlogStatusDraft, types.BlogStatusPublished:
	default:
		return types.Blog{}, invalid("unknown blog status %q", blog.Status)
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = s.now().UTC()
	}
	blog.ID = ""
	return s.repo.Create(ctx, blog)
}

func (s *BlogService) Publish(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetStatus(ctx, id, types.BlogStatusPublished)
}

func (s *BlogService) Unpublish(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetStatus(ctx, id, types.BlogStatusDraft)
}

func (s *BlogService) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
