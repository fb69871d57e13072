package chessmg

import "errors"

// Failure kinds for malformed external input. Detailed errors wrap these,
// so callers can test with errors.Is.
var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move text")
	ErrIllegalMove   = errors.New("illegal move")
)
