package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDiscovery      = errors.New("page discovery failed")
	ErrPageLoad       = errors.New("page load failed")
	ErrPageOutOfRange = errors.New("page index out of range")
	ErrNotDiscovered  = errors.New("page total not discovered")
)
