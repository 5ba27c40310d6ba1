package main

import "time"

type Game struct {
	settings    GameSettings
	rules       Rules
	state       GameState
	history     MoveHistory
	whitePlayer IPlayer
	blackPlayer IPlayer
	generation  uint64
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.generation++
	g.turnStart = time.Now()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.generation++
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) History() MoveHistory {
	return g.history
}

// Generation increments on every mutation and reset. Asynchronous searches
// record it when they snapshot the state and their result is discarded if it
// no longer matches.
func (g *Game) Generation() uint64 {
	return g.generation
}

// applyMoveToState is the single mutation path shared by live play and
// search clones. It returns true iff the turn switched; a false return means
// the same side still has a capture from the landing square and the
// selection is locked onto it.
func applyMoveToState(state *GameState, rules Rules, fromX, fromY int, move Move) bool {
	cell := state.Board.At(fromX, fromY)
	state.Board.Set(fromX, fromY, CellEmpty)
	if move.Capture {
		state.Board.Set(move.CapturedX, move.CapturedY, CellEmpty)
		if playerOf(cell) == PlayerWhite {
			state.CapturedWhite++
		} else {
			state.CapturedBlack++
		}
	}
	if !cell.IsKing() && move.Y == rules.promotionRank(playerOf(cell)) {
		cell = promotedCell(cell)
	}
	state.Board.Set(move.X, move.Y, cell)
	if move.Capture && rules.HasCaptureMoves(state.Board, move.X, move.Y) {
		state.selectPiece(move.X, move.Y)
		state.ChainActive = true
		return false
	}
	state.clearSelection()
	state.ToMove = otherPlayer(state.ToMove)
	return true
}

// ApplyMove validates and applies a generated move for the side to move.
// Returns true iff the turn switched to the opponent.
func (g *Game) ApplyMove(fromX, fromY int, move Move) bool {
	cell := g.state.Board.At(fromX, fromY)
	if cell == CellEmpty || !cell.BelongsTo(g.state.ToMove) {
		g.state.LastMessage = "no piece to move"
		return false
	}
	if move.Capture && !isEnemy(g.state.Board.At(move.CapturedX, move.CapturedY), cell) {
		// Generated moves never carry bogus capture coordinates; refuse to
		// mutate rather than silently removing nothing.
		g.state.LastMessage = "invalid capture"
		return false
	}
	player := g.state.ToMove
	wasKing := cell.IsKing()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	isAiMove := !g.CurrentPlayerIsHuman()

	switched := applyMoveToState(&g.state, g.rules, fromX, fromY, move)
	g.state.LastMessage = ""
	g.generation++

	entry := HistoryEntry{
		FromX:     fromX,
		FromY:     fromY,
		ToX:       move.X,
		ToY:       move.Y,
		Player:    player,
		Capture:   move.Capture,
		CapturedX: move.CapturedX,
		CapturedY: move.CapturedY,
		Promoted:  !wasKing && g.state.Board.At(move.X, move.Y).IsKing(),
		IsAi:      isAiMove,
		ElapsedMs: elapsedMs,
	}
	g.history.Push(entry)

	if switched {
		g.turnStart = time.Now()
		g.updateStatus(player)
	}
	return switched
}

// updateStatus runs the game-over scan after a completed turn: a side left
// with zero pieces or zero legal moves has lost.
func (g *Game) updateStatus(mover PlayerColor) {
	next := g.state.ToMove
	if g.state.Board.CountPieces(next) > 0 && g.rules.HasAnyMoves(g.state.Board, next) {
		return
	}
	if mover == PlayerWhite {
		g.state.Status = StatusWhiteWon
	} else {
		g.state.Status = StatusBlackWon
	}
}

// HandleInput drives the selection state machine from a cell click. Returns
// true iff the observable state (board or selection) changed.
func (g *Game) HandleInput(x, y int) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	board := g.state.Board
	player := g.state.ToMove

	if g.state.ChainActive {
		// A capture chain in progress locks the selection: only further
		// captures of the chained piece are accepted.
		for _, move := range g.rules.LegalMoves(board, g.state.SelectionX, g.state.SelectionY) {
			if move.Capture && move.X == x && move.Y == y {
				g.ApplyMove(g.state.SelectionX, g.state.SelectionY, move)
				return true
			}
		}
		return false
	}

	mustCapture := g.rules.HasAnyCaptureMoves(board, player)
	cell := board.At(x, y)

	if !g.state.HasSelection {
		if cell.BelongsTo(player) && g.selectable(x, y, mustCapture) {
			g.state.selectPiece(x, y)
			return true
		}
		return false
	}

	moves := g.rules.LegalMoves(board, g.state.SelectionX, g.state.SelectionY)
	if mustCapture {
		moves = filterCaptures(moves)
	}
	for _, move := range moves {
		if move.X == x && move.Y == y {
			g.ApplyMove(g.state.SelectionX, g.state.SelectionY, move)
			return true
		}
	}
	if cell.BelongsTo(player) && g.selectable(x, y, mustCapture) {
		g.state.selectPiece(x, y)
		return true
	}
	g.state.clearSelection()
	return true
}

func (g *Game) selectable(x, y int, mustCapture bool) bool {
	if mustCapture {
		return g.rules.HasCaptureMoves(g.state.Board, x, y)
	}
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerWhite {
		return g.whitePlayer
	}
	return g.blackPlayer
}

func (g *Game) createPlayers() {
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer()
	}
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer()
	}
}
