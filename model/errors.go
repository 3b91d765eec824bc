package model

import "errors"

var (
	// ErrInvalidConsumption means a distance was consumed that the dice do not
	// hold. Moves accepted by IsValidMove never trigger it.
	ErrInvalidConsumption = errors.New("model: distance not available in dice")

	// ErrNoEntry means the dice cannot pay for entering a pawn.
	ErrNoEntry = errors.New("model: dice do not allow entry")

	// ErrOvershoot means a move would go past the end of the home row.
	ErrOvershoot = errors.New("model: move overshoots home")

	ErrOffPath         = errors.New("model: location is not on the color's path")
	ErrInvalidDistance = errors.New("model: distance must be positive")
)
