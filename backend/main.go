package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

type StatusResponse struct {
	Settings    GameSettingsDTO   `json:"settings"`
	Config      Config            `json:"config"`
	Board       [][]int           `json:"board"`
	NextPlayer  int               `json:"next_player"`
	Winner      int               `json:"winner"`
	BoardSize   int               `json:"board_size"`
	Status      string            `json:"status"`
	Selection   *selection        `json:"selection,omitempty"`
	History     []historyEntryDTO `json:"history"`
	LastMessage string            `json:"last_message"`
}

type GameSettingsDTO struct {
	Mode         string `json:"mode"`
	HumanPlayer  int    `json:"human_player"`
	BoardSize    int    `json:"board_size"`
	StartingRows int    `json:"starting_rows"`
}

type apiClick struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	FromX     int     `json:"from_x"`
	FromY     int     `json:"from_y"`
	ToX       int     `json:"to_x"`
	ToY       int     `json:"to_y"`
	Player    int     `json:"player"`
	Capture   bool    `json:"capture"`
	CapturedX int     `json:"captured_x"`
	CapturedY int     `json:"captured_y"`
	Promoted  bool    `json:"promoted"`
	IsAi      bool    `json:"is_ai"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

func main() {
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()

	scheduler := NewMoveScheduler(controller, SchedulerCallbacks{
		OnBoardChanged: func() {
			if hub.HasClients() {
				hub.broadcastBoard <- boardFromController(controller)
			}
		},
		OnTurnChanged: func() {
			if hub.HasClients() {
				hub.broadcastStatus <- controllerStatus(controller)
			}
		},
		OnGameOverCheck: func() {
			state := controller.State()
			if state.Status == StatusWhiteWon || state.Status == StatusBlackWon {
				hub.broadcastStatus <- controllerStatus(controller)
			}
		},
	})
	defer scheduler.Cancel()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		scheduler.Cancel()
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
		scheduler.MaybeActNow()
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		scheduler.Cancel()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
			scheduler.Cancel()
			scheduler.SetEnabled(payload.Config.AiEnabled)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
			scheduler.MaybeActNow()
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/click", func(w http.ResponseWriter, r *http.Request) {
		var payload apiClick
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		changed := controller.OnCellClicked(payload.X, payload.Y)
		if changed {
			hub.broadcastBoard <- boardFromController(controller)
			scheduler.MaybeActNow()
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	group, ctx := errgroup.WithContext(sigCtx)
	group.Go(func() error {
		hub.Run(ctx.Done())
		return nil
	})
	group.Go(func() error {
		log.Println("[backend] listening on :8080")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		scheduler.Cancel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[backend] graceful shutdown failed: %v", err)
			return server.Close()
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		log.Printf("[backend] exiting after error: %v", err)
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeLoop(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:    controllerSettingsDTO(controller.Settings()),
		Config:      GetConfig(),
		Board:       boardToSlice(state.Board),
		NextPlayer:  playerToInt(state.ToMove),
		Winner:      winnerFromStatus(state.Status),
		BoardSize:   state.Board.Size(),
		Status:      statusToString(state.Status),
		Selection:   selectionFromState(state),
		History:     historyToDTO(controller.History()),
		LastMessage: state.LastMessage,
	}
}

func boardFromController(controller *GameController) boardPayload {
	state := controller.State()
	return boardPayload{
		Board:      boardToSlice(state.Board),
		NextPlayer: playerToInt(state.ToMove),
		Winner:     winnerFromStatus(state.Status),
		Status:     statusToString(state.Status),
		Selection:  selectionFromState(state),
		MoveCount:  controller.History().Size(),
	}
}

func selectionFromState(state GameState) *selection {
	if !state.HasSelection {
		return nil
	}
	return &selection{X: state.SelectionX, Y: state.SelectionY, Chain: state.ChainActive}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.BoardSize > 0 {
		settings.BoardSize = dto.BoardSize
	}
	if dto.StartingRows > 0 {
		settings.StartingRows = dto.StartingRows
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.WhiteType = PlayerAI
		settings.BlackType = PlayerAI
	case "human_vs_human":
		settings.WhiteType = PlayerHuman
		settings.BlackType = PlayerHuman
	case "human_vs_ai":
		if dto.HumanPlayer == 2 {
			settings.WhiteType = PlayerAI
			settings.BlackType = PlayerHuman
		} else {
			settings.WhiteType = PlayerHuman
			settings.BlackType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "human_vs_ai"
	if settings.WhiteType == PlayerAI && settings.BlackType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.WhiteType == PlayerHuman && settings.BlackType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.WhiteType == PlayerHuman {
		humanPlayer = 1
	} else if settings.BlackType == PlayerHuman {
		humanPlayer = 2
	}
	return GameSettingsDTO{
		Mode:         mode,
		HumanPlayer:  humanPlayer,
		BoardSize:    settings.BoardSize,
		StartingRows: settings.StartingRows,
	}
}

func boardToSlice(board Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellWhiteMan:
		return 1
	case CellWhiteKing:
		return 2
	case CellBlackMan:
		return 3
	case CellBlackKing:
		return 4
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerWhite {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusWhiteWon:
		return 1
	case StatusBlackWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusWhiteWon:
		return "white_won"
	case StatusBlackWon:
		return "black_won"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryDTO{
			FromX:     entry.FromX,
			FromY:     entry.FromY,
			ToX:       entry.ToX,
			ToY:       entry.ToY,
			Player:    playerToInt(entry.Player),
			Capture:   entry.Capture,
			CapturedX: entry.CapturedX,
			CapturedY: entry.CapturedY,
			Promoted:  entry.Promoted,
			IsAi:      entry.IsAi,
			ElapsedMs: entry.ElapsedMs,
		})
	}
	return result
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
