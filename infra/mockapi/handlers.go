package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/infra/auth"
)

type ctxKey string

const ctxUserIDKey ctxKey = "user_id"

// ----------- JSON helpers -------------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store errors onto the status codes the client expects.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "you are not the author")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, errBadCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "empty request body")
		return false
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeError(w, http.StatusNotFound, "invalid "+name)
		return 0, false
	}
	return v, true
}

func queryInt(q url.Values, name string) int {
	v, _ := strconv.Atoi(q.Get(name))
	return v
}

// ----------- Auth -------------

func bearer(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// identify attaches the caller's user ID when a valid token is present.
// Public routes ignore bad tokens so anonymous browsing keeps working.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearer(r); tok != "" {
			if claims, err := auth.Verify(tok, s.secret); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserIDKey, claims.UserID()))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewer(r) == 0 {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// viewer returns the signed-in user ID, or 0.
func viewer(r *http.Request) int {
	id, _ := r.Context().Value(ctxUserIDKey).(int)
	return id
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}
	id, nickname, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	token, err := auth.Sign(id, nickname, s.secret, tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// ----------- Posts -------------

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

// pageLink rewrites the request URL to point at another page.
func pageLink(r *http.Request, page int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

func withLinks[T any](r *http.Request, page domain.Page[T], current, size int) domain.Page[T] {
	current = max(current, 1)
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	if current*size < page.Count {
		page.Next = pageLink(r, current+1)
	}
	if current > 1 {
		page.Previous = pageLink(r, current-1)
	}
	return page
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lq := ListQuery{
		Page:       queryInt(q, "page"),
		PageSize:   queryInt(q, "page_size"),
		Keyword:    q.Get("search"),
		Filter:     domain.SearchFilter(q.Get("search_filter")),
		CategoryID: queryInt(q, "category_id"),
		Sort:       domain.SortOption(q.Get("sort")),
	}
	page, err := s.store.ListPosts(lq)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withLinks(r, page, lq.Page, lq.PageSize))
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	p, err := s.store.GetPost(id, viewer(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var d domain.PostDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	id, err := s.store.CreatePost(viewer(r), d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"detail": "created", "pk": id})
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var d domain.PostDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	if err := s.store.UpdatePost(viewer(r), id, d); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"detail": "updated", "pk": id})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeletePost(viewer(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
}

func (s *Server) setLike(w http.ResponseWriter, r *http.Request, liked bool) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	count, err := s.store.SetLike(viewer(r), id, liked)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	detail := "liked"
	if !liked {
		detail = "unliked"
	}
	writeJSON(w, http.StatusOK, map[string]any{"detail": detail, "like_count": count})
}

func (s *Server) likePost(w http.ResponseWriter, r *http.Request)   { s.setLike(w, r, true) }
func (s *Server) unlikePost(w http.ResponseWriter, r *http.Request) { s.setLike(w, r, false) }

// ----------- Comments -------------

type commentReq struct {
	Content string `json:"content"`
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	page, size := queryInt(q, "page"), queryInt(q, "page_size")
	out, err := s.store.ListComments(id, page, size, viewer(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withLinks(r, out, page, size))
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req commentReq
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.store.CreateComment(viewer(r), id, req.Content)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// commentIDs reads {cid} and the optional parent {id}.
func commentIDs(w http.ResponseWriter, r *http.Request) (postID, commentID int, ok bool) {
	if chi.URLParam(r, "id") != "" {
		if postID, ok = intParam(w, r, "id"); !ok {
			return 0, 0, false
		}
	}
	commentID, ok = intParam(w, r, "cid")
	return postID, commentID, ok
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	postID, cid, ok := commentIDs(w, r)
	if !ok {
		return
	}
	var req commentReq
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.store.UpdateComment(viewer(r), postID, cid, req.Content)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	postID, cid, ok := commentIDs(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteComment(viewer(r), postID, cid); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
}

// ----------- Uploads -------------

func (s *Server) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"file_name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		writeError(w, http.StatusBadRequest, "file_name required")
		return
	}
	base := fmt.Sprintf("http://%s", r.Host)
	target, err := s.presign.Presign(r.Context(), base, req.FileName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func (s *Server) putUpload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, domain.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, domain.ErrFileTooLarge.Error())
		return
	}
	ct := r.Header.Get("Content-Type")
	if err := domain.ValidateUpload(int64(len(data)), ct); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.PutObject(key, r.URL.Query().Get("token"), ct, data); err != nil {
		writeError(w, http.StatusForbidden, "invalid or expired upload url")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getUpload(w http.ResponseWriter, r *http.Request) {
	ct, data, err := s.store.GetObject(chi.URLParam(r, "*"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(data)
}
