package bitio

import "errors"

// ErrTruncated is returned (wrapped) when a read runs past the end of
// the underlying buffer.
var ErrTruncated = errors.New("truncated")

// ErrNoSpace is returned (wrapped) when a write cannot fit in the
// writer's remaining capacity.
var ErrNoSpace = errors.New("no space")
