package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPostNotFound        = errors.New("post not found")
	ErrNotPostOwner        = errors.New("access denied")
	ErrSlugTaken           = errors.New("a post with this title already exists")
	ErrSearchQueryRequired = errors.New("search query is required")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

// ValidationError lists the input fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}
