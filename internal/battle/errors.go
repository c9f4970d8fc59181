package battle

import "errors"

var (
	ErrTeamSize      = errors.New("wrong team size")
	ErrNoMoves       = errors.New("combatant has no moves")
	ErrBattleOver    = errors.New("battle is over")
	ErrMustSwitch    = errors.New("active combatant fainted, a switch is required")
	ErrInvalidMove   = errors.New("no such move")
	ErrInvalidSwitch = errors.New("cannot switch to that combatant")
	ErrBadMultiplier = errors.New("multiplier must be one of 0, 0.5, 1 or 2")
)
