package board

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/boardterm/domain"
)

type commentService struct {
	client *Client
}

// NewCommentService returns a CommentService backed by the REST API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type commentBody struct {
	Content string `json:"content"`
}

func commentsPath(postID int) string {
	return postPath(postID) + "/comments"
}

func commentPath(postID, commentID int) string {
	return fmt.Sprintf("%s/%d", commentsPath(postID), commentID)
}

func (s *commentService) ListComments(ctx context.Context, postID, page, pageSize int) (domain.Page[domain.Comment], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	var out domain.Page[domain.Comment]
	if err := s.client.Get(ctx, commentsPath(postID), q, &out); err != nil {
		return out, fmt.Errorf("listing comments of post %d: %w", postID, err)
	}
	for i := range out.Results {
		out.Results[i] = sanitizeComment(out.Results[i])
	}
	return out, nil
}

func (s *commentService) CreateComment(ctx context.Context, postID int, content string) (domain.Comment, error) {
	if err := domain.ValidateComment(content); err != nil {
		return domain.Comment{}, err
	}
	var out domain.Comment
	if err := s.client.Post(ctx, commentsPath(postID), commentBody{Content: content}, &out); err != nil {
		return out, fmt.Errorf("commenting on post %d: %w", postID, err)
	}
	return sanitizeComment(out), nil
}

func (s *commentService) UpdateComment(ctx context.Context, postID, commentID int, content string) (domain.Comment, error) {
	if err := domain.ValidateComment(content); err != nil {
		return domain.Comment{}, err
	}
	var out domain.Comment
	if err := s.client.Put(ctx, commentPath(postID, commentID), commentBody{Content: content}, &out); err != nil {
		return out, fmt.Errorf("updating comment %d: %w", commentID, err)
	}
	return sanitizeComment(out), nil
}

func (s *commentService) DeleteComment(ctx context.Context, postID, commentID int) error {
	if err := s.client.Delete(ctx, commentPath(postID, commentID), nil); err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	return nil
}
