package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/infra/auth"
	"github.com/CrestNiraj12/boardterm/infra/config"
)

const testSecret = "test-secret-key"

// MockPresigner is a mock implementation of Presigner
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) Presign(ctx context.Context, baseURL, fileName string) (domain.PresignedUpload, error) {
	args := m.Called(baseURL, fileName)
	return args.Get(0).(domain.PresignedUpload), args.Error(1)
}

var _ Presigner = (*MockPresigner)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.cost = bcrypt.MinCost
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	require.NoError(t, Seed(s))
	return s
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *Store) {
	t.Helper()
	store := newTestStore(t)
	opts = append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)
	srv, err := NewServer(store, config.MockConfig{JWTSecret: testSecret}, opts...)
	require.NoError(t, err)
	return srv, store
}

func do(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	token := login(t, h, DemoEmail, DemoPassword)
	claims, err := auth.Verify(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "demo", claims.Nickname)

	w := do(t, h, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{"email": DemoEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/accounts/login", "", map[string]string{"email": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPosts_PaginationAndLinks(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/api/v1/posts?page=1&page_size=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.Page[domain.PostSummary]](t, w)
	assert.Equal(t, 36, page.Count)
	assert.Len(t, page.Results, 10)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)
	next, err := url.Parse(*page.Next)
	require.NoError(t, err)
	assert.Equal(t, "2", next.Query().Get("page"))

	w = do(t, h, http.MethodGet, "/api/v1/posts?page=4&page_size=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	last := decode[domain.Page[domain.PostSummary]](t, w)
	assert.Len(t, last.Results, 6)
	assert.Nil(t, last.Next)
	assert.NotNil(t, last.Previous)

	w = do(t, h, http.MethodGet, "/api/v1/posts?page=5&page_size=10", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPosts_FilterAndSort(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/api/v1/posts?category_id=2&page_size=100", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.Page[domain.PostSummary]](t, w)
	require.NotEmpty(t, page.Results)
	for _, p := range page.Results {
		assert.Equal(t, 2, p.CategoryID)
	}

	w = do(t, h, http.MethodGet, "/api/v1/posts?search=ALICE&search_filter=author&page_size=100", "", nil)
	page = decode[domain.Page[domain.PostSummary]](t, w)
	require.NotEmpty(t, page.Results)
	for _, p := range page.Results {
		assert.Equal(t, "alice", p.Author.Nickname)
	}

	w = do(t, h, http.MethodGet, "/api/v1/posts?search=welcome&search_filter=title&page_size=100", "", nil)
	page = decode[domain.Page[domain.PostSummary]](t, w)
	assert.Equal(t, 3, page.Count)

	w = do(t, h, http.MethodGet, "/api/v1/posts?sort=oldest", "", nil)
	page = decode[domain.Page[domain.PostSummary]](t, w)
	require.GreaterOrEqual(t, len(page.Results), 2)
	assert.True(t, page.Results[0].CreatedAt.Before(page.Results[1].CreatedAt))

	w = do(t, h, http.MethodGet, "/api/v1/posts?sort=most_views&page_size=100", "", nil)
	page = decode[domain.Page[domain.PostSummary]](t, w)
	for i := 1; i < len(page.Results); i++ {
		assert.GreaterOrEqual(t, page.Results[i-1].ViewCount, page.Results[i].ViewCount)
	}
}

func TestGetPost_CountsViewsAndReflectsViewer(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h, DemoEmail, DemoPassword)

	first := decode[domain.Post](t, do(t, h, http.MethodGet, "/api/v1/posts/1", "", nil))
	second := decode[domain.Post](t, do(t, h, http.MethodGet, "/api/v1/posts/1", token, nil))
	assert.Equal(t, first.ViewCount+1, second.ViewCount)
	assert.False(t, first.IsAuthor)
	assert.True(t, second.IsAuthor, "post 1 is seeded for the demo user")

	w := do(t, h, http.MethodGet, "/api/v1/posts/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	demo := login(t, h, DemoEmail, DemoPassword)
	bob := login(t, h, "bob@boardterm.dev", "bob12345")

	w := do(t, h, http.MethodPost, "/api/v1/posts", "", domain.PostDraft{Title: "t", Content: "c", CategoryID: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/posts", demo, domain.PostDraft{Title: " ", Content: "c", CategoryID: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/posts", demo, domain.PostDraft{Title: "Hello", Content: "![cat](http://img/cat.png) body", CategoryID: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[struct {
		Detail string `json:"detail"`
		PK     int    `json:"pk"`
	}](t, w)
	path := "/api/v1/posts/" + strconv.Itoa(created.PK)

	list := decode[domain.Page[domain.PostSummary]](t, do(t, h, http.MethodGet, "/api/v1/posts?page_size=1", "", nil))
	require.Len(t, list.Results, 1)
	assert.Equal(t, created.PK, list.Results[0].ID, "new post is latest")
	require.NotNil(t, list.Results[0].ThumbnailImgURL)
	assert.Equal(t, "http://img/cat.png", *list.Results[0].ThumbnailImgURL)
	assert.Equal(t, "body", list.Results[0].ContentPreview)

	w = do(t, h, http.MethodPut, path, bob, domain.PostDraft{Title: "x", Content: "y", CategoryID: 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, h, http.MethodPut, path, demo, domain.PostDraft{Title: "Edited", Content: "y", CategoryID: 2})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Post](t, do(t, h, http.MethodGet, path, demo, nil))
	assert.Equal(t, "Edited", got.Title)
	assert.Equal(t, 2, got.Category.ID)

	w = do(t, h, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, h, http.MethodDelete, path, demo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeUnlike_RestoresCount(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h, "alice@boardterm.dev", "alice1234")

	before := decode[domain.Post](t, do(t, h, http.MethodGet, "/api/v1/posts/2", token, nil))
	require.False(t, before.IsLiked)

	type likeResp struct {
		LikeCount int `json:"like_count"`
	}
	liked := decode[likeResp](t, do(t, h, http.MethodPost, "/api/v1/posts/2/like", token, nil))
	assert.Equal(t, before.LikeCount+1, liked.LikeCount)
	again := decode[likeResp](t, do(t, h, http.MethodPost, "/api/v1/posts/2/like", token, nil))
	assert.Equal(t, liked.LikeCount, again.LikeCount, "liking twice is idempotent")

	after := decode[domain.Post](t, do(t, h, http.MethodGet, "/api/v1/posts/2", token, nil))
	assert.True(t, after.IsLiked)

	unliked := decode[likeResp](t, do(t, h, http.MethodDelete, "/api/v1/posts/2/like", token, nil))
	assert.Equal(t, before.LikeCount, unliked.LikeCount)
}

func TestCommentLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	demo := login(t, h, DemoEmail, DemoPassword)
	bob := login(t, h, "bob@boardterm.dev", "bob12345")

	w := do(t, h, http.MethodPost, "/api/v1/posts/1/comments", demo, commentReq{Content: "first! @bob"})
	require.Equal(t, http.StatusCreated, w.Code)
	c := decode[domain.Comment](t, w)
	assert.True(t, c.IsAuthor)

	w = do(t, h, http.MethodPost, "/api/v1/posts/1/comments", demo, commentReq{Content: strings.Repeat("x", domain.MaxCommentLength+1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	page := decode[domain.Page[domain.Comment]](t, do(t, h, http.MethodGet, "/api/v1/posts/1/comments", bob, nil))
	require.NotEmpty(t, page.Results)
	lastComment := page.Results[len(page.Results)-1]
	assert.Equal(t, c.ID, lastComment.ID, "comments are oldest first")
	assert.False(t, lastComment.IsAuthor)

	cpath := "/api/v1/posts/1/comments/" + strconv.Itoa(c.ID)
	w = do(t, h, http.MethodPut, cpath, bob, commentReq{Content: "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, h, http.MethodPut, "/api/v1/posts/2/comments/"+strconv.Itoa(c.ID), demo, commentReq{Content: "wrong post"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, cpath, demo, commentReq{Content: "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode[domain.Comment](t, w).Content)

	w = do(t, h, http.MethodDelete, "/api/v1/comments/"+strconv.Itoa(c.ID), demo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodDelete, cpath, demo, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresignAndLocalUpload(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h, DemoEmail, DemoPassword)

	w := do(t, h, http.MethodPut, "/api/v1/questions/presigned-url", token, map[string]string{"file_name": "Cat.PNG"})
	require.Equal(t, http.StatusOK, w.Code)
	target := decode[domain.PresignedUpload](t, w)
	assert.True(t, strings.HasSuffix(target.ImgURL, ".png"))
	assert.True(t, strings.HasPrefix(target.PresignedURL, target.ImgURL+"?token="))

	put := func(rawURL, contentType, body string) int {
		u, err := url.Parse(rawURL)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, u.RequestURI(), strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, put(target.PresignedURL, "text/plain", "nope"))
	assert.Equal(t, http.StatusForbidden, put(target.ImgURL+"?token=forged", "image/png", "png"))
	assert.Equal(t, http.StatusOK, put(target.PresignedURL, "image/png", "png-bytes"))
	assert.Equal(t, http.StatusForbidden, put(target.PresignedURL, "image/png", "again"), "tokens are single use")

	u, _ := url.Parse(target.ImgURL)
	w = do(t, h, http.MethodGet, u.Path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestPresign_UsesConfiguredPresigner(t *testing.T) {
	presigner := new(MockPresigner)
	srv, _ := newTestServer(t, WithPresigner(presigner))
	h := srv.Handler()
	token := login(t, h, DemoEmail, DemoPassword)

	want := domain.PresignedUpload{PresignedURL: "https://s3/x?sig", ImgURL: "https://s3/x"}
	presigner.On("Presign", "http://example.com", "a.png").Return(want, nil)

	w := do(t, h, http.MethodPut, "/api/v1/questions/presigned-url", token, map[string]string{"file_name": "a.png"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, decode[domain.PresignedUpload](t, w))

	w = do(t, h, http.MethodPut, "/api/v1/questions/presigned-url", "", map[string]string{"file_name": "a.png"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	presigner.AssertExpectations(t)
}

func TestS3Presigner_SignsPutObject(t *testing.T) {
	p, err := newS3Presigner(config.S3Config{
		Bucket:          "board",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	got, err := p.Presign(context.Background(), "", "photo.jpg")
	require.NoError(t, err)
	assert.Contains(t, got.PresignedURL, "X-Amz-Signature=")
	assert.True(t, strings.HasPrefix(got.PresignedURL, "http://127.0.0.1:9000/board/images/"))
	assert.True(t, strings.HasPrefix(got.ImgURL, "http://127.0.0.1:9000/board/images/"))
	assert.True(t, strings.HasSuffix(got.ImgURL, ".jpg"))
}

func TestInvalidTokenOnPublicRouteIsAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	w := do(t, h, http.MethodGet, "/api/v1/posts/categories", "garbage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cats := decode[[]domain.Category](t, w)
	assert.Len(t, cats, 4)
}

func TestNewServer_RequiresSecret(t *testing.T) {
	_, err := NewServer(NewStore(), config.MockConfig{})
	assert.Error(t, err)
}
