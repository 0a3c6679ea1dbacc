package store

import "errors"

var (
	ErrNoActiveSpace        = errors.New("no active space to insert into")
	ErrSpaceNotActive       = errors.New("space is not an active leaf")
	ErrPieceNotFound        = errors.New("piece not found")
	ErrDuplicateStructural  = errors.New("space already has a piece of this structural kind")
	ErrUnknownPieceType     = errors.New("piece type cannot be inserted")
	ErrInvalidDimensions    = errors.New("dimensions must be positive")
	ErrUnsupportedGenerator = errors.New("generator not supported on this piece type")
)
