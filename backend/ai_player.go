package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	manValue      = 100
	kingValue     = 300
	mobilityValue = 5
	winScore      = 100000
	scoreInfinity = 1 << 30
)

// AIPlayer selects moves for an automated side. Searches can run
// synchronously (ChooseMove) or on a worker goroutine (StartThinking); the
// worker result carries the generation it was computed for so callers can
// drop it when the game advanced or was reset meanwhile.
type AIPlayer struct {
	rngMu      sync.Mutex
	rng        *rand.Rand
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	workerDone chan struct{}

	moveMutex       sync.Mutex
	readyMove       CandidateMove
	readyOK         bool
	readyGeneration uint64
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState, rules Rules) (CandidateMove, bool) {
	config := GetConfig()
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return chooseMoveWithConfig(state, rules, config, a.rng)
}

func (a *AIPlayer) StartThinking(state GameState, rules Rules, generation uint64) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		a.rngMu.Lock()
		cand, ok := chooseMoveWithConfig(stateCopy, rules, config, a.rng)
		a.rngMu.Unlock()
		if a.stopSignal.Load() {
			a.thinking.Store(false)
			return
		}
		a.moveMutex.Lock()
		a.readyMove = cand
		a.readyOK = ok
		a.readyGeneration = generation
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

// TakeMove hands out the worker result together with the generation it was
// computed for.
func (a *AIPlayer) TakeMove() (CandidateMove, uint64, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyGeneration, a.readyOK
}

func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
}

func chooseMoveWithConfig(state GameState, rules Rules, config Config, rng *rand.Rand) (CandidateMove, bool) {
	switch config.AiTier {
	case TierRandom:
		return chooseRandomMove(state, rules, rng)
	default:
		return chooseAlphaBetaMove(state, rules, config.AiDepth, rng)
	}
}

// collectCandidates builds the candidate pool for player: every legal move
// of every piece, restricted to the chained piece while a capture chain is
// in progress, and restricted to captures whenever any capture exists.
func collectCandidates(state GameState, rules Rules, player PlayerColor) []CandidateMove {
	if state.ChainActive && state.HasSelection &&
		state.Board.At(state.SelectionX, state.SelectionY).BelongsTo(player) {
		moves := filterCaptures(rules.LegalMoves(state.Board, state.SelectionX, state.SelectionY))
		candidates := make([]CandidateMove, 0, len(moves))
		for _, move := range moves {
			candidates = append(candidates, CandidateMove{FromX: state.SelectionX, FromY: state.SelectionY, Move: move})
		}
		return candidates
	}

	var candidates []CandidateMove
	anyCapture := false
	size := state.Board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !state.Board.At(x, y).BelongsTo(player) {
				continue
			}
			for _, move := range rules.LegalMoves(state.Board, x, y) {
				if move.Capture {
					anyCapture = true
				}
				candidates = append(candidates, CandidateMove{FromX: x, FromY: y, Move: move})
			}
		}
	}
	if !anyCapture {
		return candidates
	}
	captures := candidates[:0]
	for _, cand := range candidates {
		if cand.Move.Capture {
			captures = append(captures, cand)
		}
	}
	return captures
}

func chooseRandomMove(state GameState, rules Rules, rng *rand.Rand) (CandidateMove, bool) {
	candidates := collectCandidates(state, rules, state.ToMove)
	if len(candidates) == 0 {
		return CandidateMove{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// chooseAlphaBetaMove scores every root candidate with a fixed-depth
// alpha-beta minimax and picks uniformly among the best-scored ones. Root
// candidates get a full window each so equal values stay comparable for the
// tie-break.
func chooseAlphaBetaMove(state GameState, rules Rules, depth int, rng *rand.Rand) (CandidateMove, bool) {
	rootPlayer := state.ToMove
	candidates := collectCandidates(state, rules, rootPlayer)
	if len(candidates) == 0 {
		return CandidateMove{}, false
	}
	if depth < 1 {
		depth = 1
	}
	bestScore := -scoreInfinity
	var best []CandidateMove
	for _, cand := range candidates {
		next := state.Clone()
		applyMoveToState(&next, rules, cand.FromX, cand.FromY, cand.Move)
		score := alphabeta(next, rules, rootPlayer, depth-1, -scoreInfinity, scoreInfinity)
		if score > bestScore {
			bestScore = score
			best = best[:0]
		}
		if score == bestScore {
			best = append(best, cand)
		}
	}
	return best[rng.Intn(len(best))], true
}

func alphabeta(state GameState, rules Rules, rootPlayer PlayerColor, depth, alpha, beta int) int {
	if depth <= 0 {
		return evaluateState(state.Board, rules, rootPlayer)
	}
	mover := state.ToMove
	candidates := collectCandidates(state, rules, mover)
	if len(candidates) == 0 {
		// No moves means the side to move has lost.
		if mover == rootPlayer {
			return -winScore
		}
		return winScore
	}
	if mover == rootPlayer {
		best := -scoreInfinity
		for _, cand := range candidates {
			next := state.Clone()
			applyMoveToState(&next, rules, cand.FromX, cand.FromY, cand.Move)
			score := alphabeta(next, rules, rootPlayer, depth-1, alpha, beta)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}
	best := scoreInfinity
	for _, cand := range candidates {
		next := state.Clone()
		applyMoveToState(&next, rules, cand.FromX, cand.FromY, cand.Move)
		score := alphabeta(next, rules, rootPlayer, depth-1, alpha, beta)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluateState scores the board from rootPlayer's perspective: material
// (man=100, king=300) plus 5 per legal move of mobility difference.
func evaluateState(board Board, rules Rules, rootPlayer PlayerColor) int {
	score := 0
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			value := manValue
			if cell.IsKing() {
				value = kingValue
			}
			if cell.BelongsTo(rootPlayer) {
				score += value
			} else {
				score -= value
			}
		}
	}
	opponent := otherPlayer(rootPlayer)
	score += mobilityValue * (rules.CountLegalMoves(board, rootPlayer) - rules.CountLegalMoves(board, opponent))
	return score
}
