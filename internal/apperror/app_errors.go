package apperror

import "errors"

var (
	ErrInvalidConfig          = errors.New("invalid configuration")
	ErrOutOfBounds            = errors.New("coordinates are out of bounds")
	ErrTileOccupied           = errors.New("tile is already occupied")
	ErrAlreadyClaimed         = errors.New("tile is already claimed")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrIdentityNotAssigned    = errors.New("identity is not assigned")
	ErrIdentityTaken          = errors.New("identity is already taken")
	ErrUnknownIdentity        = errors.New("unknown identity")
	ErrGameFinished           = errors.New("game is already finished")
	ErrNotFound               = errors.New("not found")
)
