package image

import "errors"

// Validation failures; reported before any side effect.
var (
	ErrImageRequired = errors.New("base64 image data is required")
	ErrInvalidUserID = errors.New("a valid user id is required")
	ErrInvalidImage  = errors.New("image data is not valid base64")
)

// Lookups that found nothing.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrImageNotFound    = errors.New("no image for this user")
	ErrNoImages         = errors.New("no images stored")
	ErrNoContent        = errors.New("no content matches the filter")
	ErrNoFilteredImages = errors.New("no matching content has an image")
)
