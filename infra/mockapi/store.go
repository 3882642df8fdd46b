// Package mockapi is an in-memory stand-in for the board backend. It speaks
// the same REST contract as the real server so the client can be developed
// and demoed without one.
package mockapi

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CrestNiraj12/boardterm/domain"
)

var errBadCredentials = errors.New("invalid email or password")

var imageRe = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)

type user struct {
	id       int
	email    string
	nickname string
	hash     []byte
}

func (u user) author() domain.Author {
	return domain.Author{ID: u.id, Nickname: u.nickname}
}

type post struct {
	id         int
	authorID   int
	categoryID int
	title      string
	content    string
	views      int
	likes      map[int]struct{}
	createdAt  time.Time
	updatedAt  time.Time
}

type comment struct {
	id        int
	postID    int
	authorID  int
	content   string
	createdAt time.Time
	updatedAt time.Time
}

type object struct {
	contentType string
	data        []byte
}

// ListQuery mirrors the post list query string.
type ListQuery struct {
	Page       int
	PageSize   int
	Keyword    string
	Filter     domain.SearchFilter
	CategoryID int
	Sort       domain.SortOption
}

// Store holds users, posts, comments and uploaded objects.
type Store struct {
	mu sync.RWMutex

	now  func() time.Time
	cost int

	users      map[int]*user
	categories []domain.Category
	posts      map[int]*post
	comments   map[int]*comment
	objects    map[string]object
	pending    map[string]string // upload key -> one-time token

	nextUser, nextPost, nextComment int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
		users:    map[int]*user{},
		posts:    map[int]*post{},
		comments: map[int]*comment{},
		objects:  map[string]object{},
		pending:  map[string]string{},
	}
}

// AddUser registers an account and returns its ID.
func (s *Store) AddUser(email, nickname, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.email, email) {
			return 0, fmt.Errorf("email %s already registered", email)
		}
	}
	s.nextUser++
	s.users[s.nextUser] = &user{id: s.nextUser, email: email, nickname: nickname, hash: hash}
	return s.nextUser, nil
}

// AddCategory appends a category and returns its ID.
func (s *Store) AddCategory(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.categories) + 1
	s.categories = append(s.categories, domain.Category{ID: id, Name: name})
	return id
}

// Authenticate checks credentials.
func (s *Store) Authenticate(email, password string) (id int, nickname string, err error) {
	s.mu.RLock()
	var found *user
	for _, u := range s.users {
		if strings.EqualFold(u.email, strings.TrimSpace(email)) {
			found = u
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return 0, "", errBadCredentials
	}
	if bcrypt.CompareHashAndPassword(found.hash, []byte(password)) != nil {
		return 0, "", errBadCredentials
	}
	return found.id, found.nickname, nil
}

// Categories returns every category.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Store) hasCategory(id int) bool {
	return slices.ContainsFunc(s.categories, func(c domain.Category) bool { return c.ID == id })
}

func (s *Store) category(id int) domain.Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}
	return domain.Category{ID: id}
}

func (s *Store) author(id int) domain.Author {
	if u, ok := s.users[id]; ok {
		return u.author()
	}
	return domain.Author{ID: id, Nickname: "unknown"}
}

func (s *Store) commentCount(postID int) int {
	n := 0
	for _, c := range s.comments {
		if c.postID == postID {
			n++
		}
	}
	return n
}

func (s *Store) matches(p *post, q ListQuery) bool {
	if q.CategoryID != domain.AllCategoryID && p.categoryID != q.CategoryID {
		return false
	}
	kw := strings.ToLower(strings.TrimSpace(q.Keyword))
	if kw == "" {
		return true
	}
	title := strings.Contains(strings.ToLower(p.title), kw)
	content := strings.Contains(strings.ToLower(p.content), kw)
	switch q.Filter.Normalize() {
	case domain.FilterTitle:
		return title
	case domain.FilterContent:
		return content
	case domain.FilterAuthor:
		return strings.Contains(strings.ToLower(s.author(p.authorID).Nickname), kw)
	default:
		return title || content
	}
}

func (s *Store) summary(p *post) domain.PostSummary {
	sum := domain.PostSummary{
		ID:             p.id,
		Author:         s.author(p.authorID),
		Title:          p.title,
		ContentPreview: domain.Preview(imageRe.ReplaceAllString(p.content, ""), 120),
		CommentCount:   s.commentCount(p.id),
		ViewCount:      p.views,
		LikeCount:      len(p.likes),
		CreatedAt:      p.createdAt,
		UpdatedAt:      p.updatedAt,
		CategoryID:     p.categoryID,
	}
	if m := imageRe.FindStringSubmatch(p.content); m != nil {
		thumb := m[1]
		sum.ThumbnailImgURL = &thumb
	}
	return sum
}

// ListPosts filters, sorts and paginates. Pages past the end are ErrNotFound.
func (s *Store) ListPosts(q ListQuery) (domain.Page[domain.PostSummary], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []domain.PostSummary
	for _, p := range s.posts {
		if s.matches(p, q) {
			rows = append(rows, s.summary(p))
		}
	}

	byNewest := func(a, b domain.PostSummary) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	}
	slices.SortFunc(rows, func(a, b domain.PostSummary) int {
		switch q.Sort.Normalize() {
		case domain.SortOldest:
			return -byNewest(a, b)
		case domain.SortMostViews:
			return cmp.Or(cmp.Compare(b.ViewCount, a.ViewCount), byNewest(a, b))
		case domain.SortMostLikes:
			return cmp.Or(cmp.Compare(b.LikeCount, a.LikeCount), byNewest(a, b))
		case domain.SortMostComments:
			return cmp.Or(cmp.Compare(b.CommentCount, a.CommentCount), byNewest(a, b))
		default:
			return byNewest(a, b)
		}
	})

	return paginate(rows, q.Page, q.PageSize)
}

func paginate[T any](rows []T, page, size int) (domain.Page[T], error) {
	page = max(page, 1)
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)

	start := (page - 1) * size
	if start > 0 && start >= len(rows) {
		return domain.Page[T]{}, fmt.Errorf("invalid page %d: %w", page, domain.ErrNotFound)
	}
	end := min(start+size, len(rows))
	out := domain.Page[T]{Count: len(rows), Results: slices.Clone(rows[start:end])}
	if out.Results == nil {
		out.Results = []T{}
	}
	return out, nil
}

// GetPost returns the post and counts a view.
func (s *Store) GetPost(id, viewer int) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	p.views++
	_, liked := p.likes[viewer]
	return domain.Post{
		ID:           p.id,
		Title:        p.title,
		Content:      p.content,
		Category:     s.category(p.categoryID),
		Author:       s.author(p.authorID),
		ViewCount:    p.views,
		LikeCount:    len(p.likes),
		CommentCount: s.commentCount(p.id),
		CreatedAt:    p.createdAt,
		UpdatedAt:    p.updatedAt,
		IsLiked:      viewer != 0 && liked,
		IsAuthor:     viewer != 0 && viewer == p.authorID,
	}, nil
}

func (s *Store) checkDraft(d domain.PostDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !s.hasCategory(d.CategoryID) {
		return fmt.Errorf("unknown category %d: %w", d.CategoryID, domain.ErrNoCategory)
	}
	return nil
}

// CreatePost stores a draft written by userID.
func (s *Store) CreatePost(userID int, d domain.PostDraft) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDraft(d); err != nil {
		return 0, err
	}
	now := s.now()
	s.nextPost++
	s.posts[s.nextPost] = &post{
		id:         s.nextPost,
		authorID:   userID,
		categoryID: d.CategoryID,
		title:      strings.TrimSpace(d.Title),
		content:    d.Content,
		likes:      map[int]struct{}{},
		createdAt:  now,
		updatedAt:  now,
	}
	return s.nextPost, nil
}

func (s *Store) ownPost(userID, id int) (*post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.authorID != userID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// UpdatePost replaces title, content and category. Author only.
func (s *Store) UpdatePost(userID, id int, d domain.PostDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.ownPost(userID, id)
	if err != nil {
		return err
	}
	if err := s.checkDraft(d); err != nil {
		return err
	}
	p.title = strings.TrimSpace(d.Title)
	p.content = d.Content
	p.categoryID = d.CategoryID
	p.updatedAt = s.now()
	return nil
}

// DeletePost removes the post and its comments. Author only.
func (s *Store) DeletePost(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownPost(userID, id); err != nil {
		return err
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.postID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

// SetLike records or clears userID's like and returns the new count.
// Repeating the same action is a no-op.
func (s *Store) SetLike(userID, id int, liked bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if liked {
		p.likes[userID] = struct{}{}
	} else {
		delete(p.likes, userID)
	}
	return len(p.likes), nil
}

func (s *Store) toComment(c *comment, viewer int) domain.Comment {
	return domain.Comment{
		ID:        c.id,
		Content:   c.content,
		Author:    s.author(c.authorID),
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
		IsAuthor:  viewer != 0 && viewer == c.authorID,
	}
}

// ListComments pages a post's comments oldest first.
func (s *Store) ListComments(postID, page, size, viewer int) (domain.Page[domain.Comment], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[postID]; !ok {
		return domain.Page[domain.Comment]{}, domain.ErrNotFound
	}
	var rows []*comment
	for _, c := range s.comments {
		if c.postID == postID {
			rows = append(rows, c)
		}
	}
	slices.SortFunc(rows, func(a, b *comment) int {
		return cmp.Or(a.createdAt.Compare(b.createdAt), cmp.Compare(a.id, b.id))
	})
	out := make([]domain.Comment, 0, len(rows))
	for _, c := range rows {
		out = append(out, s.toComment(c, viewer))
	}
	return paginate(out, page, size)
}

// CreateComment adds a reply to postID.
func (s *Store) CreateComment(userID, postID int, content string) (domain.Comment, error) {
	if err := domain.ValidateComment(content); err != nil {
		return domain.Comment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	now := s.now()
	s.nextComment++
	c := &comment{id: s.nextComment, postID: postID, authorID: userID, content: content, createdAt: now, updatedAt: now}
	s.comments[c.id] = c
	return s.toComment(c, userID), nil
}

// ownComment finds a comment by ID. postID 0 skips the parent check.
func (s *Store) ownComment(userID, postID, id int) (*comment, error) {
	c, ok := s.comments[id]
	if !ok || (postID != 0 && c.postID != postID) {
		return nil, domain.ErrNotFound
	}
	if c.authorID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// UpdateComment edits a comment. Author only.
func (s *Store) UpdateComment(userID, postID, id int, content string) (domain.Comment, error) {
	if err := domain.ValidateComment(content); err != nil {
		return domain.Comment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.ownComment(userID, postID, id)
	if err != nil {
		return domain.Comment{}, err
	}
	c.content = content
	c.updatedAt = s.now()
	return s.toComment(c, userID), nil
}

// DeleteComment removes a comment. Author only.
func (s *Store) DeleteComment(userID, postID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownComment(userID, postID, id); err != nil {
		return err
	}
	delete(s.comments, id)
	return nil
}

// ReserveUpload remembers the one-time token allowed to write key.
func (s *Store) ReserveUpload(key, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key] = token
}

// PutObject stores data under key if token matches the reservation.
func (s *Store) PutObject(key, token, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.pending[key]
	if !ok || want != token {
		return domain.ErrForbidden
	}
	delete(s.pending, key)
	s.objects[key] = object{contentType: contentType, data: slices.Clone(data)}
	return nil
}

// GetObject returns a stored upload.
func (s *Store) GetObject(key string) (contentType string, data []byte, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	return o.contentType, o.data, nil
}
