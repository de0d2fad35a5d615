package utils

import "errors"

var (
	ErrInvalidLimit  = errors.New("limit must be between 1 and 100")
	ErrUnknownMetric = errors.New("unknown dashboard metric")
)
