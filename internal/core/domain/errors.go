package domain

import "errors"

var (
	ErrNotFound         = errors.New("domain: not found")
	ErrExpired          = errors.New("domain: artifact expired")
	ErrInvalidParameter = errors.New("domain: invalid parameter")
)
