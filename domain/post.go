package domain

import "time"

// AllCategoryID is the client-side "All" tab; it is never sent to the server.
const AllCategoryID = 0

// Category is a board section posts are filed under.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Author is the public profile attached to posts and comments.
type Author struct {
	ID            int     `json:"id"`
	Nickname      string  `json:"nickname"`
	ProfileImgURL *string `json:"profile_img_url"`
}

// PostSummary is a single row of the post list.
type PostSummary struct {
	ID              int       `json:"id"`
	Author          Author    `json:"author"`
	Title           string    `json:"title"`
	ThumbnailImgURL *string   `json:"thumbnail_img_url"`
	ContentPreview  string    `json:"content_preview"`
	CommentCount    int       `json:"comment_count"`
	ViewCount       int       `json:"view_count"`
	LikeCount       int       `json:"like_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CategoryID      int       `json:"category_id"`
}

// Post is the full detail of a board entry.
type Post struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"` // Markdown
	Category     Category  `json:"category"`
	Author       Author    `json:"author"`
	ViewCount    int       `json:"view_count"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsLiked      bool      `json:"is_liked"`
	IsAuthor     bool      `json:"is_author"`
}

// Summary projects a detail onto the list row shape so list state can be patched
// from the detail view.
func (p Post) Summary() PostSummary {
	return PostSummary{
		ID:             p.ID,
		Author:         p.Author,
		Title:          p.Title,
		ContentPreview: Preview(p.Content, previewRunes),
		CommentCount:   p.CommentCount,
		ViewCount:      p.ViewCount,
		LikeCount:      p.LikeCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		CategoryID:     p.Category.ID,
	}
}

// PostDraft is the body of create and update requests.
type PostDraft struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsAuthor  bool      `json:"is_author"`
}

// Page is one page of a paginated collection. Next is nil on the last page.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether the server advertised another page.
func (p Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// PresignedUpload is a temporary object-storage upload target.
type PresignedUpload struct {
	PresignedURL string `json:"presigned_url"`
	ImgURL       string `json:"img_url"`
}
