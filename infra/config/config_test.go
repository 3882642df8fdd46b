package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CrestNiraj12/boardterm/domain"
)

func TestLoad_ParsesEnvAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARDTERM_API_URL", "https://board.example.com/")
	t.Setenv("BOARDTERM_CONFIG_DIR", dir)
	t.Setenv("BOARDTERM_PAGE_SIZE", "25")
	t.Setenv("BOARDTERM_TIMEOUT", "3s")
	t.Setenv("BOARDTERM_S3_BUCKET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "https://board.example.com" {
		t.Fatalf("api url must be normalized: %q", cfg.APIURL)
	}
	if cfg.TokenPath != filepath.Join(dir, "token") || cfg.UIStatePath != filepath.Join(dir, "ui_state.json") {
		t.Fatalf("unexpected paths: %#v", cfg)
	}
	if cfg.PageSize != 25 || cfg.Timeout != 3*time.Second {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.Mock.S3.Enabled() {
		t.Fatalf("s3 must be disabled without a bucket")
	}
	if got := cfg.ShareURL(7); got != "https://board.example.com/community/7" {
		t.Fatalf("unexpected share url: %q", got)
	}
}

func TestLoad_URLRules(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "http://localhost:8080", wantErr: false},
		{url: "http://127.0.0.1:9000", wantErr: false},
		{url: "https://board.example.com", wantErr: false},
		{url: "http://insecure.example.com", wantErr: true},
		{url: "ftp://board.example.com", wantErr: true},
		{url: "board.example.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Setenv("BOARDTERM_CONFIG_DIR", t.TempDir())
			t.Setenv("BOARDTERM_API_URL", tt.url)
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	t.Setenv("BOARDTERM_CONFIG_DIR", t.TempDir())
	t.Setenv("BOARDTERM_API_URL", "")
	for _, v := range []string{"0", "101", "ten"} {
		t.Setenv("BOARDTERM_PAGE_SIZE", v)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for page size %q", v)
		}
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ui_state.json")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if st != (UIState{}.Normalize()) {
		t.Fatalf("expected default state for missing file, got %#v", st)
	}

	want := UIState{CategoryID: 3, Sort: domain.SortMostLikes, Filter: domain.FilterAuthor, PagingMode: domain.PagingPages}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load after save failed: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected loaded state got=%#v want=%#v", got, want)
	}

	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt state failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected parse error for invalid json")
	}
}

func TestUIState_NormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_state.json")
	raw := `{"category_id":-4,"sort":"hottest","filter":"everything","paging_mode":"scroll"}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write state failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := UIState{CategoryID: 0, Sort: domain.SortLatest, Filter: domain.FilterTitleOrContent, PagingMode: domain.PagingInfinite}
	if got != want {
		t.Fatalf("got=%#v want=%#v", got, want)
	}
}
