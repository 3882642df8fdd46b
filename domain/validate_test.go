package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestPostDraftValidate_Order(t *testing.T) {
	tests := []struct {
		name  string
		draft PostDraft
		want  error
	}{
		{name: "no category", draft: PostDraft{Title: "t", Content: "c"}, want: ErrNoCategory},
		{name: "blank title", draft: PostDraft{CategoryID: 1, Title: "  ", Content: "c"}, want: ErrEmptyTitle},
		{name: "blank content", draft: PostDraft{CategoryID: 1, Title: "t", Content: "\n\t"}, want: ErrEmptyContent},
		{name: "all missing reports category first", draft: PostDraft{}, want: ErrNoCategory},
		{name: "valid", draft: PostDraft{CategoryID: 2, Title: "t", Content: "c"}, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.draft.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
		})
	}
}

func TestValidateComment_Limit(t *testing.T) {
	if err := ValidateComment(strings.Repeat("a", MaxCommentLength)); err != nil {
		t.Fatalf("500 runes must be accepted: %v", err)
	}
	if err := ValidateComment(strings.Repeat("a", MaxCommentLength+1)); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("501 runes must be rejected, got %v", err)
	}
	if err := ValidateComment(strings.Repeat("가", MaxCommentLength)); err != nil {
		t.Fatalf("limit counts runes not bytes: %v", err)
	}
	if err := ValidateComment("   "); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("blank comment must be rejected, got %v", err)
	}
}

func TestValidateUpload(t *testing.T) {
	if err := ValidateUpload(MaxUploadBytes+1, "image/png"); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected size error, got %v", err)
	}
	if err := ValidateUpload(10, "application/pdf"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected type error, got %v", err)
	}
	if err := ValidateUpload(10, "image/jpeg"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestNormalizeEnums(t *testing.T) {
	if got := SortOption("views").Normalize(); got != SortLatest {
		t.Fatalf("unknown sort must normalize to latest, got %q", got)
	}
	if got := SortMostLikes.Normalize(); got != SortMostLikes {
		t.Fatalf("known sort must be kept, got %q", got)
	}
	if got := SearchFilter("all").Normalize(); got != FilterTitleOrContent {
		t.Fatalf("unknown filter must normalize, got %q", got)
	}
	if got := PagingMode("").Normalize(); got != PagingInfinite {
		t.Fatalf("empty mode must normalize to infinite, got %q", got)
	}
}

func TestPostQueryKey_IgnoresFilterWithoutKeyword(t *testing.T) {
	a := PostQuery{CategoryID: 1, Sort: SortLatest, Filter: FilterTitle}
	b := PostQuery{CategoryID: 1, Sort: SortLatest, Filter: FilterAuthor}
	if a.Key() != b.Key() {
		t.Fatalf("filter without keyword must not change key")
	}
	b.Keyword = "go"
	if a.Key() == b.Key() {
		t.Fatalf("keyword must change key")
	}
}

func TestPreview_FlattensAndTruncates(t *testing.T) {
	if got := Preview("a\n\nb   c", 10); got != "a b c" {
		t.Fatalf("unexpected preview: %q", got)
	}
	if got := Preview("abcdef", 3); got != "abc…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
