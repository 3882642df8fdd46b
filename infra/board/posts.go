package board

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/boardterm/domain"
)

type postService struct {
	client *Client
}

// NewPostService returns a PostService backed by the REST API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type mutationResponse struct {
	Detail string `json:"detail"`
	PK     int    `json:"pk"`
}

type likeResponse struct {
	Detail    string `json:"detail"`
	LikeCount int    `json:"like_count"`
}

func postPath(id int) string {
	return fmt.Sprintf("%s/posts/%d", apiPrefix, id)
}

func (s *postService) Categories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := s.client.Get(ctx, apiPrefix+"/posts/categories", nil, &cats); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	for i := range cats {
		cats[i].Name = sanitizeForTerminal(cats[i].Name)
	}
	return cats, nil
}

// listQuery builds the list query string. Absent or zero parameters are
// omitted so the server applies its own defaults.
func listQuery(q domain.PostQuery, page, pageSize int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
	if q.Keyword != "" {
		v.Set("search", q.Keyword)
		v.Set("search_filter", string(q.Filter.Normalize()))
	}
	if q.CategoryID != domain.AllCategoryID {
		v.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort.Normalize()))
	}
	return v
}

func (s *postService) ListPosts(ctx context.Context, q domain.PostQuery, page, pageSize int) (domain.Page[domain.PostSummary], error) {
	var out domain.Page[domain.PostSummary]
	if err := s.client.Get(ctx, apiPrefix+"/posts", listQuery(q, page, pageSize), &out); err != nil {
		return out, fmt.Errorf("listing posts: %w", err)
	}
	for i := range out.Results {
		out.Results[i] = sanitizeSummary(out.Results[i])
	}
	return out, nil
}

func (s *postService) GetPost(ctx context.Context, id int) (domain.Post, error) {
	var p domain.Post
	if err := s.client.Get(ctx, postPath(id), nil, &p); err != nil {
		return p, fmt.Errorf("fetching post %d: %w", id, err)
	}
	return sanitizePost(p), nil
}

func (s *postService) CreatePost(ctx context.Context, d domain.PostDraft) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	var out mutationResponse
	if err := s.client.Post(ctx, apiPrefix+"/posts", d, &out); err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}
	return out.PK, nil
}

func (s *postService) UpdatePost(ctx context.Context, id int, d domain.PostDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.client.Put(ctx, postPath(id), d, nil); err != nil {
		return fmt.Errorf("updating post %d: %w", id, err)
	}
	return nil
}

func (s *postService) DeletePost(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, postPath(id), nil); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	return nil
}

func (s *postService) Like(ctx context.Context, id int) (int, error) {
	var out likeResponse
	if err := s.client.Post(ctx, postPath(id)+"/like", nil, &out); err != nil {
		return 0, fmt.Errorf("liking post %d: %w", id, err)
	}
	return out.LikeCount, nil
}

func (s *postService) Unlike(ctx context.Context, id int) (int, error) {
	var out likeResponse
	if err := s.client.Delete(ctx, postPath(id)+"/like", &out); err != nil {
		return 0, fmt.Errorf("unliking post %d: %w", id, err)
	}
	return out.LikeCount, nil
}
