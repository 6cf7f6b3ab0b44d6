package domain

import "errors"

var (
	ErrInvalidCaseType     = errors.New("invalid case type")
	ErrUnsupportedImageRef = errors.New("unsupported image reference")
	ErrImageRefForbidden   = errors.New("image reference is outside the gallery")
	ErrImageUnreadable     = errors.New("image is not readable")
	ErrFlowClosed          = errors.New("flow is closed")
	ErrNoResult            = errors.New("no successful result available")
)
