package models

import "errors"

// Contract errors returned when a request violates construction-time
// invariants. These are the only errors the core surfaces to callers;
// expected runtime failures (validation findings, platform outages) are
// reported in-band as structured results.
var (
	// ErrInvalidContent is returned when content violates a field bound or
	// a type gate at construction time.
	ErrInvalidContent = errors.New("invalid content")

	// ErrInvalidRequest is returned when a publish or batch request is
	// malformed.
	ErrInvalidRequest = errors.New("invalid request")
)
