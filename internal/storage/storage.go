package storage

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrAuthorNotFound   = errors.New("author not found")
)
