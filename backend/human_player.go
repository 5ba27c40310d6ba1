package main

// HumanPlayer moves through HandleInput clicks; it never chooses a move
// itself.
type HumanPlayer struct{}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) ChooseMove(GameState, Rules) (CandidateMove, bool) {
	return CandidateMove{}, false
}
