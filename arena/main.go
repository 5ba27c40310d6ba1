// arena plays automated games against a running backend over its HTTP API
// and reports outcome statistics. Useful for sanity-checking tiers against
// each other after rule or evaluation changes.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	logger       *log.Logger
	games        int
	maxMoves     int
}

type statusResponse struct {
	Status     string            `json:"status"`
	Winner     int               `json:"winner"`
	NextPlayer int               `json:"next_player"`
	BoardSize  int               `json:"board_size"`
	History    []json.RawMessage `json:"history"`
}

type arenaConfig struct {
	AiEnabled      bool `json:"ai_enabled"`
	AiTier         int  `json:"ai_tier"`
	AiDepth        int  `json:"ai_depth"`
	AiMoveDelayMs  int  `json:"ai_move_delay_ms"`
	AiChainDelayMs int  `json:"ai_chain_delay_ms"`
}

func main() {
	baseURL := flag.String("addr", "http://localhost:8080", "backend base URL")
	games := flag.Int("games", 10, "number of games to play")
	tier := flag.String("tier", "alphabeta", "AI tier: random or alphabeta")
	depth := flag.Int("depth", 3, "alpha-beta search depth")
	maxMoves := flag.Int("max-moves", 300, "abort a game after this many moves")
	poll := flag.Duration("poll", 100*time.Millisecond, "status poll interval")
	flag.Parse()

	logger := log.New(os.Stderr, "[arena] ", log.LstdFlags)
	a := &arena{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      *baseURL,
		pollInterval: *poll,
		logger:       logger,
		games:        *games,
		maxMoves:     *maxMoves,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.configure(ctx, *tier, *depth); err != nil {
		logger.Fatalf("configure backend: %v", err)
	}
	if err := a.run(ctx); err != nil {
		logger.Fatalf("run: %v", err)
	}
}

func (a *arena) configure(ctx context.Context, tier string, depth int) error {
	tierValue := 1
	if tier == "random" {
		tierValue = 0
	}
	payload := map[string]any{
		"config": arenaConfig{
			AiEnabled:      true,
			AiTier:         tierValue,
			AiDepth:        depth,
			AiMoveDelayMs:  10,
			AiChainDelayMs: 10,
		},
	}
	return a.post(ctx, "/api/settings", payload, nil)
}

func (a *arena) run(ctx context.Context) error {
	whiteWins, blackWins, aborted := 0, 0, 0
	totalMoves := 0
	for i := 0; i < a.games; i++ {
		if ctx.Err() != nil {
			break
		}
		start := map[string]any{
			"settings": map[string]any{"mode": "ai_vs_ai"},
		}
		if err := a.post(ctx, "/api/start", start, nil); err != nil {
			return fmt.Errorf("start game %d: %w", i+1, err)
		}
		winner, moves, err := a.waitForResult(ctx)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		totalMoves += moves
		switch winner {
		case 1:
			whiteWins++
		case 2:
			blackWins++
		default:
			aborted++
		}
		a.logger.Printf("game %d/%d: winner=%d moves=%d", i+1, a.games, winner, moves)
	}
	played := whiteWins + blackWins + aborted
	if played == 0 {
		return nil
	}
	a.logger.Printf("done: games=%d white=%d black=%d aborted=%d avg_moves=%.1f",
		played, whiteWins, blackWins, aborted, float64(totalMoves)/float64(played))
	return nil
}

func (a *arena) waitForResult(ctx context.Context) (winner, moves int, err error) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-ticker.C:
		}
		var status statusResponse
		if err := a.get(ctx, "/api/status", &status); err != nil {
			return 0, 0, err
		}
		if status.Winner != 0 {
			return status.Winner, len(status.History), nil
		}
		if len(status.History) >= a.maxMoves {
			if err := a.post(ctx, "/api/reset", map[string]any{}, nil); err != nil {
				return 0, 0, err
			}
			return 0, len(status.History), nil
		}
	}
}

func (a *arena) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *arena) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *arena) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
