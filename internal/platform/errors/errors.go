package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("malformed snapshot")
	ErrStorageWrite = errors.New("storage write failed")
)
