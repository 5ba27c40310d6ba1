package main

import "testing"

func clearBoard(board *Board) {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			board.Set(x, y, CellEmpty)
		}
	}
}

func newRunningGame(t *testing.T) *Game {
	t.Helper()
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerHuman
	settings.BlackType = PlayerHuman
	g := NewGame(settings)
	g.Start()
	return &g
}

func TestSimpleMoveFlipsTurn(t *testing.T) {
	g := newRunningGame(t)
	g.state.Board.Set(2, 5, CellWhiteMan)

	if !g.HandleInput(2, 5) {
		t.Fatalf("expected selecting the white man to succeed")
	}
	if !g.state.HasSelection || g.state.SelectionX != 2 || g.state.SelectionY != 5 {
		t.Fatalf("expected selection at (2,5), got %+v", g.state)
	}
	if !g.HandleInput(1, 4) {
		t.Fatalf("expected the move to (1,4) to apply")
	}
	if g.state.Board.At(2, 5) != CellEmpty {
		t.Fatalf("expected (2,5) to be empty after the move")
	}
	if g.state.Board.At(1, 4) != CellWhiteMan {
		t.Fatalf("expected a white man at (1,4), got %v", g.state.Board.At(1, 4))
	}
	if g.state.ToMove != PlayerBlack {
		t.Fatalf("expected the turn to flip to black")
	}
	if g.state.HasSelection {
		t.Fatalf("expected the selection to clear after a completed turn")
	}
}

func TestCaptureClearsJumpedPieceAndFlipsTurn(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)
	g.state.Board.Set(1, 4, CellBlackMan)
	g.state.Board.Set(6, 1, CellBlackMan)

	if !g.HandleInput(2, 5) {
		t.Fatalf("expected to select the capturing man")
	}
	if !g.HandleInput(0, 3) {
		t.Fatalf("expected the capture to (0,3) to apply")
	}
	if g.state.Board.At(1, 4) != CellEmpty {
		t.Fatalf("expected the captured man at (1,4) to be removed")
	}
	if g.state.Board.At(0, 3) != CellWhiteMan {
		t.Fatalf("expected the white man to land on (0,3)")
	}
	if g.state.ToMove != PlayerBlack {
		t.Fatalf("expected the turn to flip with no further capture available")
	}
	if g.state.CapturedWhite != 1 {
		t.Fatalf("expected white's capture counter at 1, got %d", g.state.CapturedWhite)
	}
}

func TestForcedCaptureRestrictsInput(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)
	g.state.Board.Set(1, 4, CellBlackMan)
	g.state.Board.Set(6, 5, CellWhiteMan)

	// The man at (6,5) has simple moves but no capture: not selectable.
	if g.HandleInput(6, 5) {
		t.Fatalf("expected selecting a non-capturing piece to be refused under forced capture")
	}
	if g.state.HasSelection {
		t.Fatalf("expected no selection after a refused click")
	}

	if !g.HandleInput(2, 5) {
		t.Fatalf("expected the capturing piece to be selectable")
	}
	// (3,4) is a legal simple destination, but captures are forced; the
	// click falls through to "anything else" and clears the selection.
	if !g.HandleInput(3, 4) {
		t.Fatalf("expected the click to clear the selection")
	}
	if g.state.HasSelection {
		t.Fatalf("expected the selection to be cleared")
	}
	if g.state.Board.At(3, 4) != CellEmpty || g.state.Board.At(2, 5) != CellWhiteMan {
		t.Fatalf("expected the board to be unchanged by the refused simple move")
	}

	if !g.HandleInput(2, 5) || !g.HandleInput(0, 3) {
		t.Fatalf("expected the forced capture to apply")
	}
	if g.state.Board.At(0, 3) != CellWhiteMan {
		t.Fatalf("expected the capture to land on (0,3)")
	}
}

func TestMultiJumpKeepsTurnAndLocksSelection(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)
	g.state.Board.Set(1, 4, CellBlackMan)
	g.state.Board.Set(1, 2, CellBlackMan)
	g.state.Board.Set(6, 1, CellBlackMan)
	g.state.Board.Set(6, 5, CellWhiteMan)

	move := Move{X: 0, Y: 3, Capture: true, CapturedX: 1, CapturedY: 4}
	if g.ApplyMove(2, 5, move) {
		t.Fatalf("expected the turn to be retained: a second jump is available")
	}
	if !g.state.ChainActive {
		t.Fatalf("expected an active capture chain")
	}
	if !g.state.HasSelection || g.state.SelectionX != 0 || g.state.SelectionY != 3 {
		t.Fatalf("expected the selection locked to the landing square (0,3)")
	}
	if g.state.ToMove != PlayerWhite {
		t.Fatalf("expected white to keep the turn mid-chain")
	}

	// Mid-chain, other own pieces cannot be selected.
	if g.HandleInput(6, 5) {
		t.Fatalf("expected clicks away from the chained piece to be no-ops")
	}
	if !g.state.ChainActive || g.state.SelectionX != 0 || g.state.SelectionY != 3 {
		t.Fatalf("expected the chain lock to survive stray clicks")
	}

	if !g.HandleInput(2, 1) {
		t.Fatalf("expected the second jump to (2,1) to apply")
	}
	if g.state.Board.At(1, 2) != CellEmpty {
		t.Fatalf("expected the second captured man to be removed")
	}
	if g.state.ToMove != PlayerBlack {
		t.Fatalf("expected the turn to flip once the chain is exhausted")
	}
	if g.state.HasSelection || g.state.ChainActive {
		t.Fatalf("expected selection and chain to clear at the end of the turn")
	}
}

func TestPromotionOnFarRank(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 1, CellWhiteMan)
	g.state.Board.Set(6, 3, CellBlackMan)

	if !g.HandleInput(2, 1) || !g.HandleInput(1, 0) {
		t.Fatalf("expected the move to the far rank to apply")
	}
	if g.state.Board.At(1, 0) != CellWhiteKing {
		t.Fatalf("expected promotion to a king, got %v", g.state.Board.At(1, 0))
	}
	entries := g.history.All()
	if len(entries) != 1 || !entries[0].Promoted {
		t.Fatalf("expected the history entry to record the promotion")
	}
}

func TestSelectionSwitchAndClear(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)
	g.state.Board.Set(4, 5, CellWhiteMan)

	if g.HandleInput(0, 0) {
		t.Fatalf("expected a click on an empty cell with no selection to be a no-op")
	}
	if !g.HandleInput(2, 5) {
		t.Fatalf("expected to select (2,5)")
	}
	if !g.HandleInput(4, 5) {
		t.Fatalf("expected to switch the selection to (4,5)")
	}
	if g.state.SelectionX != 4 || g.state.SelectionY != 5 {
		t.Fatalf("expected selection at (4,5), got (%d,%d)", g.state.SelectionX, g.state.SelectionY)
	}
	if !g.HandleInput(0, 0) {
		t.Fatalf("expected a click elsewhere to clear the selection")
	}
	if g.state.HasSelection {
		t.Fatalf("expected no selection after the clearing click")
	}
}

func TestMalformedCaptureIsRejected(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)

	before := g.state.Board.Clone()
	move := Move{X: 0, Y: 3, Capture: true, CapturedX: 1, CapturedY: 4} // nothing at (1,4)
	if g.ApplyMove(2, 5, move) {
		t.Fatalf("expected the malformed capture to be rejected")
	}
	if g.state.LastMessage == "" {
		t.Fatalf("expected a rejection message")
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if g.state.Board.At(x, y) != before.At(x, y) {
				t.Fatalf("expected no mutation from a rejected move, cell (%d,%d) changed", x, y)
			}
		}
	}
}

func TestGameOverWhenOpponentHasNoPieces(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	g.state.Board.Set(2, 5, CellWhiteMan)
	g.state.Board.Set(1, 4, CellBlackMan)

	if !g.HandleInput(2, 5) || !g.HandleInput(0, 3) {
		t.Fatalf("expected the capture to apply")
	}
	if g.state.Status != StatusWhiteWon {
		t.Fatalf("expected white to win once black has no pieces, got %v", g.state.Status)
	}
}

func TestGameOverWhenOpponentHasNoMoves(t *testing.T) {
	g := newRunningGame(t)
	clearBoard(&g.state.Board)
	// Black men on the last rank with no jumps available cannot move.
	g.state.Board.Set(4, 7, CellBlackMan)
	g.state.Board.Set(6, 7, CellBlackMan)
	g.state.Board.Set(1, 2, CellWhiteMan)

	if !g.HandleInput(1, 2) || !g.HandleInput(0, 1) {
		t.Fatalf("expected the white move to apply")
	}
	if g.state.Status != StatusWhiteWon {
		t.Fatalf("expected white to win when black has no legal moves, got %v", g.state.Status)
	}
}

func TestHandleInputIgnoredWhenNotRunning(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerHuman
	settings.BlackType = PlayerHuman
	g := NewGame(settings)
	// Not started.
	if g.HandleInput(2, 5) {
		t.Fatalf("expected input to be ignored before the game starts")
	}
}

func TestGenerationAdvancesOnMovesAndReset(t *testing.T) {
	g := newRunningGame(t)
	g.state.Board.Set(2, 5, CellWhiteMan)
	before := g.Generation()
	if !g.HandleInput(2, 5) || !g.HandleInput(1, 4) {
		t.Fatalf("expected the move to apply")
	}
	if g.Generation() == before {
		t.Fatalf("expected the generation to advance on a move")
	}
	moved := g.Generation()
	g.Reset(g.settings)
	if g.Generation() == moved {
		t.Fatalf("expected the generation to advance on reset")
	}
}
