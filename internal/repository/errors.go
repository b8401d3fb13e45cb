package repository

import "errors"

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
)
