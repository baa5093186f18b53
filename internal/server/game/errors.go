package game

import "github.com/pkg/errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrBadPosition  = errors.New("bad starting position")
)
