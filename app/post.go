package app

import (
	"context"

	"github.com/CrestNiraj12/boardterm/domain"
)

// PostService reads and writes board posts.
type PostService interface {
	// Categories returns the server-side categories, without the "All" tab.
	Categories(ctx context.Context) ([]domain.Category, error)

	// ListPosts returns one page of posts matching q.
	ListPosts(ctx context.Context, q domain.PostQuery, page, pageSize int) (domain.Page[domain.PostSummary], error)

	// GetPost returns a post in full. The server counts it as a view.
	GetPost(ctx context.Context, id int) (domain.Post, error)

	// CreatePost publishes a draft and returns the new post's ID.
	CreatePost(ctx context.Context, d domain.PostDraft) (int, error)

	// UpdatePost replaces an existing post. Only the author may do this.
	UpdatePost(ctx context.Context, id int, d domain.PostDraft) error

	// DeletePost removes a post. Only the author may do this.
	DeletePost(ctx context.Context, id int) error

	// Like and Unlike return the like count after the change.
	Like(ctx context.Context, id int) (int, error)
	Unlike(ctx context.Context, id int) (int, error)
}
