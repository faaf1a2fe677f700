package domain

import "errors"

var (
	ErrAlreadyExists    = errors.New("record already exists")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidID        = errors.New("invalid laptop id")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrMissingImageInfo = errors.New("missing image info")
)
