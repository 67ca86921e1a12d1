package engine

import "errors"

// Placement rejections. The battle state is unchanged when one is returned.
var (
	ErrMatchFinished      = errors.New("match is finished")
	ErrNotYourTurn        = errors.New("not this side's turn")
	ErrNotPlacementPhase  = errors.New("placement window is closed")
	ErrAlreadyPlaced      = errors.New("a card was already placed this turn")
	ErrCardNotInHand      = errors.New("card is not in hand")
	ErrInvalidPlacement   = errors.New("cell is not a valid placement for this card")
	ErrNotHumanControlled = errors.New("side is controlled by the bot")
	ErrEmptyCatalog       = errors.New("catalog needs at least one card and one warlord")
)
