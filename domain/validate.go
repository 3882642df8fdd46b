package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxCommentLength is the comment limit in runes.
	MaxCommentLength = 500

	// MaxUploadBytes is the image upload limit.
	MaxUploadBytes = 10 * 1024 * 1024

	previewRunes = 120
)

// Validate checks a draft in the order the editor reports problems:
// category, then title, then content.
func (d PostDraft) Validate() error {
	if d.CategoryID <= AllCategoryID {
		return ErrNoCategory
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// ValidateComment rejects blank comments and comments over MaxCommentLength runes.
func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// ValidateUpload checks size and content type before an image is presigned.
func ValidateUpload(size int64, contentType string) error {
	if size > MaxUploadBytes {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ErrNotImage
	}
	return nil
}

// Preview flattens markdown into a single line of at most n runes.
func Preview(content string, n int) string {
	flat := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(flat) <= n {
		return flat
	}
	r := []rune(flat)
	return string(r[:n]) + "…"
}
