package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CrestNiraj12/boardterm/infra/config"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	tokenTTL        = 24 * time.Hour
)

// Server is the mock backend.
type Server struct {
	store   *Store
	secret  string
	presign Presigner
	logger  *log.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithPresigner replaces the upload presigner.
func WithPresigner(p Presigner) Option {
	return func(s *Server) { s.presign = p }
}

// WithLogger sends request logs to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer wires a server around store. Uploads go to S3 when cfg.S3 names a
// bucket and to the server's own /uploads route otherwise.
func NewServer(store *Store, cfg config.MockConfig, opts ...Option) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("mock server: jwt secret not configured")
	}
	s := &Server{store: store, secret: cfg.JWTSecret, logger: log.Default()}
	if cfg.S3.Enabled() {
		p, err := newS3Presigner(cfg.S3)
		if err != nil {
			return nil, err
		}
		s.presign = p
	} else {
		s.presign = localPresigner{store: store}
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(s.identify)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts/login", s.login)

		// Public
		r.Get("/posts/categories", s.listCategories)
		r.Get("/posts", s.listPosts)
		r.Get("/posts/{id}", s.getPost)
		r.Get("/posts/{id}/comments", s.listComments)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Post("/posts", s.createPost)
			r.Put("/posts/{id}", s.updatePost)
			r.Delete("/posts/{id}", s.deletePost)
			r.Post("/posts/{id}/like", s.likePost)
			r.Delete("/posts/{id}/like", s.unlikePost)

			r.Post("/posts/{id}/comments", s.createComment)
			r.Put("/posts/{id}/comments/{cid}", s.updateComment)
			r.Delete("/posts/{id}/comments/{cid}", s.deleteComment)
			// Flat comment routes kept for older clients.
			r.Put("/comments/{cid}", s.updateComment)
			r.Delete("/comments/{cid}", s.deleteComment)

			r.Put("/questions/presigned-url", s.presignUpload)
		})
	})

	r.Put("/uploads/*", s.putUpload)
	r.Get("/uploads/*", s.getUpload)
	return r
}

// Start serves on ln until ctx is cancelled.
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("mock api listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Println("shutting down mock api...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock api forced to shutdown: %w", err)
	}
	return nil
}

// ListenAndServe binds addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Start(ctx, ln)
}

// StartLocal serves on a random loopback port in the background and returns
// the base URL. Used by the TUI's --mock mode.
func (s *Server) StartLocal(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	go func() {
		if err := s.Start(ctx, ln); err != nil {
			s.logger.Printf("mock api: %v", err)
		}
	}()
	return "http://" + ln.Addr().String(), nil
}
