package khs

import "github.com/pkg/errors"

var (
	ErrBadSquare        = errors.New("bad square")
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrGameOver         = errors.New("game is over")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNoPiece          = errors.New("no piece on square")
	ErrFlankDeactivated = errors.New("piece belongs to a deactivated flank")
	ErrIllegalMove      = errors.New("illegal move")
	ErrHistoryIndex     = errors.New("history index out of range")
)
