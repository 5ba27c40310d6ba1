package main

import (
	"sync"
	"time"
)

// SchedulerCallbacks notify collaborators (renderer, UI) after an automated
// move lands.
type SchedulerCallbacks struct {
	OnBoardChanged  func()
	OnTurnChanged   func()
	OnGameOverCheck func()
}

// MoveScheduler arms a one-shot timer for the automated side instead of
// blocking the input path; at most one timer is pending and arming a new one
// cancels the prior. The search itself runs on the timer goroutine and its
// result is applied through the controller with a generation check, so a
// move computed for a game that was reset or advanced meanwhile is dropped.
type MoveScheduler struct {
	mu         sync.Mutex
	controller *GameController
	callbacks  SchedulerCallbacks
	timer      *time.Timer
	enabled    bool
}

func NewMoveScheduler(controller *GameController, callbacks SchedulerCallbacks) *MoveScheduler {
	return &MoveScheduler{
		controller: controller,
		callbacks:  callbacks,
		enabled:    true,
	}
}

// MaybeActNow arms the move timer when automation is enabled and an
// automated side is to move.
func (s *MoveScheduler) MaybeActNow() {
	config := GetConfig()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || !config.AiEnabled {
		return
	}
	if !s.controller.IsRunning() || s.controller.CurrentPlayerIsHuman() {
		return
	}
	s.scheduleLocked(time.Duration(config.AiMoveDelayMs) * time.Millisecond)
}

func (s *MoveScheduler) scheduleLocked(delay time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.fire)
}

func (s *MoveScheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	enabled := s.enabled
	s.mu.Unlock()
	if !enabled || !GetConfig().AiEnabled {
		return
	}

	state, rules, ai, generation, ok := s.controller.SnapshotForSearch()
	if !ok {
		return
	}
	cand, found := ai.ChooseMove(state, rules)
	if !found {
		// No legal move left; the game-over scan will surface the outcome.
		if s.callbacks.OnGameOverCheck != nil {
			s.callbacks.OnGameOverCheck()
		}
		return
	}
	switched, applied := s.controller.ApplySearchMove(generation, cand)
	if !applied {
		return
	}
	if s.callbacks.OnBoardChanged != nil {
		s.callbacks.OnBoardChanged()
	}
	if !switched {
		// Capture chain kept the turn; follow up with the shorter delay so
		// multi-jumps read as one sequence.
		config := GetConfig()
		s.mu.Lock()
		if s.enabled && config.AiEnabled {
			s.scheduleLocked(time.Duration(config.AiChainDelayMs) * time.Millisecond)
		}
		s.mu.Unlock()
		return
	}
	if s.callbacks.OnTurnChanged != nil {
		s.callbacks.OnTurnChanged()
	}
	if s.callbacks.OnGameOverCheck != nil {
		s.callbacks.OnGameOverCheck()
	}
	// In AI-vs-AI games the opposing side is automated too.
	s.MaybeActNow()
}

// Cancel clears any pending timer; called on reset, tier change and
// teardown.
func (s *MoveScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *MoveScheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *MoveScheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	if !enabled {
		s.cancelLocked()
	}
	s.mu.Unlock()
	if enabled {
		s.MaybeActNow()
	}
}

func (s *MoveScheduler) SetTier(tier Tier, depth int) {
	config := GetConfig()
	config.AiTier = tier
	if depth > 0 {
		config.AiDepth = depth
	}
	configStore.Update(config)
	s.Cancel()
	s.MaybeActNow()
}
