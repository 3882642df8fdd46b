package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the signed-in user may not touch the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the post or comment no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrNoCategory indicates a post draft without a category.
	ErrNoCategory = errors.New("category is required")

	// ErrEmptyTitle indicates a post draft with a blank title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates a post draft with a blank body.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds MaxCommentLength.
	ErrCommentTooLong = errors.New("comment exceeds character limit")

	// ErrFileTooLarge indicates an upload above MaxUploadBytes.
	ErrFileTooLarge = errors.New("file exceeds 10MB")

	// ErrNotImage indicates an upload whose content type is not image/*.
	ErrNotImage = errors.New("only image files can be uploaded")
)
