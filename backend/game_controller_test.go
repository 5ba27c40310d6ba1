package main

import "testing"

func TestClicksIgnoredWhileAutomatedSideToMove(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerAI
	settings.BlackType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if controller.OnCellClicked(2, 5) {
		t.Fatalf("expected clicks to be ignored while the AI is to move")
	}
	if controller.State().HasSelection {
		t.Fatalf("expected no selection from an ignored click")
	}
}

func TestApplySearchMoveDiscardsStaleGeneration(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerAI
	settings.BlackType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	_, _, _, generation, ok := controller.SnapshotForSearch()
	if !ok {
		t.Fatalf("expected a search snapshot for the automated side")
	}

	// The game is reset while the search is (conceptually) still running.
	controller.StartGame(settings)

	cand := CandidateMove{FromX: 1, FromY: 6, Move: Move{X: 0, Y: 5}}
	if _, applied := controller.ApplySearchMove(generation, cand); applied {
		t.Fatalf("expected the stale result to be discarded")
	}
	if controller.History().Size() != 0 {
		t.Fatalf("expected no move recorded from a stale result")
	}

	// A fresh snapshot applies normally.
	_, _, _, generation, ok = controller.SnapshotForSearch()
	if !ok {
		t.Fatalf("expected a fresh snapshot")
	}
	if _, applied := controller.ApplySearchMove(generation, cand); !applied {
		t.Fatalf("expected the fresh result to apply")
	}
}

func TestSnapshotForSearchRefusesHumanTurn(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerHuman
	settings.BlackType = PlayerAI
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if _, _, _, _, ok := controller.SnapshotForSearch(); ok {
		t.Fatalf("expected no snapshot while a human is to move")
	}
}

func TestUpdateSettingsKeepsBoardWhenNotResetting(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerHuman
	settings.BlackType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if !controller.OnCellClicked(1, 6) || !controller.OnCellClicked(0, 5) {
		t.Fatalf("expected the opening human move to apply")
	}
	before := controller.State()

	updated := controller.Settings()
	updated.WhiteType = PlayerAI
	updated.BlackType = PlayerAI
	controller.UpdateSettings(updated, false)

	after := controller.State()
	if after.Board.At(0, 5) != before.Board.At(0, 5) || after.Board.At(1, 6) != before.Board.At(1, 6) {
		t.Fatalf("expected the board to be preserved when switching player types")
	}
	if controller.History().Size() != 1 {
		t.Fatalf("expected the history to be preserved")
	}
	if controller.CurrentPlayerIsHuman() {
		t.Fatalf("expected the side to move to be automated after the switch")
	}
}

func TestResetReinitializesGame(t *testing.T) {
	settings := DefaultGameSettings()
	settings.WhiteType = PlayerHuman
	settings.BlackType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	if !controller.OnCellClicked(1, 6) || !controller.OnCellClicked(0, 5) {
		t.Fatalf("expected the opening move to apply")
	}
	controller.Reset(settings)

	state := controller.State()
	if state.Status != StatusNotStarted {
		t.Fatalf("expected a reset game to be not started")
	}
	if state.Board.At(1, 6) != CellWhiteMan || state.Board.At(0, 5) != CellEmpty {
		t.Fatalf("expected the starting layout after reset")
	}
	if controller.History().Size() != 0 {
		t.Fatalf("expected an empty history after reset")
	}
}
