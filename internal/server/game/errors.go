package game

import "errors"

var (
	ErrNotFound       = errors.New("game not found")
	ErrBusy           = errors.New("ai is thinking")
	ErrIllegalMove    = errors.New("illegal move")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game is over")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrGameNotOver    = errors.New("game is not over")
	ErrAlreadyScored  = errors.New("score already submitted")
	ErrNoMoveReturned = errors.New("engine returned no move")
)
