package main

import "sync"

// GameController is the single mutation point for the canonical game. HTTP
// handlers, the websocket layer and the scheduler all go through it.
type GameController struct {
	mu   sync.Mutex
	game Game
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

// OnCellClicked feeds a pointer/tap click into the selection state machine.
// Clicks are ignored while an automated side is to move.
func (gc *GameController) OnCellClicked(x, y int) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false
	}
	return gc.game.HandleInput(x, y)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) Generation() uint64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Generation()
}

func (gc *GameController) IsRunning() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.state.Status == StatusRunning
}

func (gc *GameController) CurrentPlayerIsHuman() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.CurrentPlayerIsHuman()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.settings = update
	gc.game.createPlayers()
}

// SnapshotForSearch hands the scheduler an isolated state clone plus the
// generation it belongs to. ok is false when no automated move is due.
func (gc *GameController) SnapshotForSearch() (GameState, Rules, *AIPlayer, uint64, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.state.Status != StatusRunning {
		return GameState{}, Rules{}, nil, 0, false
	}
	ai, ok := gc.game.currentPlayer().(*AIPlayer)
	if !ok {
		return GameState{}, Rules{}, nil, 0, false
	}
	return gc.game.State(), gc.game.rules, ai, gc.game.Generation(), true
}

// ApplySearchMove applies an asynchronous search result unless the game
// moved on since the search snapshot was taken. switched reports whether the
// turn passed to the opponent; applied is false for stale or rejected moves.
func (gc *GameController) ApplySearchMove(generation uint64, cand CandidateMove) (switched, applied bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.Generation() != generation || gc.game.state.Status != StatusRunning {
		return false, false
	}
	before := gc.game.history.Size()
	switched = gc.game.ApplyMove(cand.FromX, cand.FromY, cand.Move)
	applied = gc.game.history.Size() > before
	return switched, applied
}
