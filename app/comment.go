package app

import (
	"context"

	"github.com/CrestNiraj12/boardterm/domain"
)

// CommentService manages replies under a post. Comments come oldest first.
type CommentService interface {
	ListComments(ctx context.Context, postID, page, pageSize int) (domain.Page[domain.Comment], error)
	CreateComment(ctx context.Context, postID int, content string) (domain.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID int, content string) (domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int) error
}
