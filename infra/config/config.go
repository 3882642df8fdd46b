package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/CrestNiraj12/boardterm/domain"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	defaultPageSize = 10
	maxPageSize     = 100
	defaultTimeout  = 10 * time.Second
	defaultMockAddr = ":8080"
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string // e.g. "https://board.example.com"
	ConfigDir   string
	TokenPath   string // Path to file containing the access token
	UIStatePath string
	PageSize    int
	Timeout     time.Duration
	LogPath     string // empty disables debug logging

	Mock MockConfig
}

// MockConfig configures the in-memory backend.
type MockConfig struct {
	Addr      string
	JWTSecret string
	S3        S3Config
}

// S3Config enables real presigned URLs when Bucket is set.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether presigning should go to S3.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads configuration from environment variables, after merging a .env
// file from the working directory when one exists.
//
//	BOARDTERM_API_URL     API base URL (default: http://localhost:8080)
//	BOARDTERM_CONFIG_DIR  token and UI state directory (default: ~/.config/boardterm)
//	BOARDTERM_PAGE_SIZE   posts per page, 1..100 (default: 10)
//	BOARDTERM_TIMEOUT     per-request timeout (default: 10s)
//	BOARDTERM_LOG         debug log file
func Load() (Config, error) {
	_ = godotenv.Load()

	apiURL, err := normalizeAPIURL(getEnv("BOARDTERM_API_URL", defaultAPIURL))
	if err != nil {
		return Config{}, err
	}

	dir := os.Getenv("BOARDTERM_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "boardterm")
	}

	pageSize := defaultPageSize
	if v := os.Getenv("BOARDTERM_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return Config{}, fmt.Errorf("invalid BOARDTERM_PAGE_SIZE: must be 1..%d", maxPageSize)
		}
		pageSize = n
	}

	timeout := defaultTimeout
	if v := os.Getenv("BOARDTERM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid BOARDTERM_TIMEOUT: %q", v)
		}
		timeout = d
	}

	return Config{
		APIURL:      apiURL,
		ConfigDir:   dir,
		TokenPath:   filepath.Join(dir, "token"),
		UIStatePath: filepath.Join(dir, "ui_state.json"),
		PageSize:    pageSize,
		Timeout:     timeout,
		LogPath:     os.Getenv("BOARDTERM_LOG"),
		Mock: MockConfig{
			Addr:      getEnv("BOARDTERM_MOCK_ADDR", defaultMockAddr),
			JWTSecret: getEnv("BOARDTERM_JWT_SECRET", "boardterm-dev-secret"),
			S3: S3Config{
				Bucket:          os.Getenv("BOARDTERM_S3_BUCKET"),
				Region:          getEnv("BOARDTERM_S3_REGION", "us-east-1"),
				Endpoint:        os.Getenv("BOARDTERM_S3_ENDPOINT"),
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			},
		},
	}, nil
}

// ShareURL is the web address of a post.
func (c Config) ShareURL(postID int) string {
	return fmt.Sprintf("%s/community/%d", c.APIURL, postID)
}

func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid BOARDTERM_API_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid BOARDTERM_API_URL: plain http is only allowed for localhost")
		}
	default:
		return "", fmt.Errorf("invalid BOARDTERM_API_URL: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// UIState is the list view state restored across runs.
type UIState struct {
	CategoryID int                 `json:"category_id"`
	Sort       domain.SortOption   `json:"sort"`
	Filter     domain.SearchFilter `json:"filter"`
	PagingMode domain.PagingMode   `json:"paging_mode"`
}

// Normalize replaces unknown enum values with defaults.
func (s UIState) Normalize() UIState {
	if s.CategoryID < 0 {
		s.CategoryID = domain.AllCategoryID
	}
	s.Sort = s.Sort.Normalize()
	s.Filter = s.Filter.Normalize()
	s.PagingMode = s.PagingMode.Normalize()
	return s
}

// LoadUIState reads the state file. A missing file yields the defaults.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return UIState{}.Normalize(), nil
	}
	if err != nil {
		return UIState{}.Normalize(), fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}.Normalize(), fmt.Errorf("parsing ui state: %w", err)
	}
	return st.Normalize(), nil
}

// SaveUIState writes the state file, creating its directory.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st.Normalize(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
