package main

type PlayerColor int

type GameStatus int

const (
	PlayerWhite PlayerColor = iota
	PlayerBlack
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusWhiteWon
	StatusBlackWon
)

type GameState struct {
	Board        Board
	ToMove       PlayerColor
	Status       GameStatus
	HasSelection bool
	SelectionX   int
	SelectionY   int
	// ChainActive locks the selection onto a piece that just captured and
	// still has a capture available; the turn stays with ToMove until the
	// chain is exhausted.
	ChainActive   bool
	CapturedWhite int
	CapturedBlack int
	LastMessage   string
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.BoardSize, settings.StartingRows)
	s.ToMove = PlayerWhite
	s.Status = StatusNotStarted
	s.HasSelection = false
	s.SelectionX = -1
	s.SelectionY = -1
	s.ChainActive = false
	s.CapturedWhite = 0
	s.CapturedBlack = 0
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	return clone
}

func (s *GameState) clearSelection() {
	s.HasSelection = false
	s.SelectionX = -1
	s.SelectionY = -1
	s.ChainActive = false
}

func (s *GameState) selectPiece(x, y int) {
	s.HasSelection = true
	s.SelectionX = x
	s.SelectionY = y
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerWhite {
		return PlayerBlack
	}
	return PlayerWhite
}
