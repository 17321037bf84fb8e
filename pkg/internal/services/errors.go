package services

import "errors"

var (
	ErrBlankContent   = errors.New("content cannot be blank")
	ErrContentTooLong = errors.New("content is too long")
	ErrInvalidUser    = errors.New("invalid user profile")
)
