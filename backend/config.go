package main

import "sync"

type Tier int

const (
	TierRandom Tier = iota
	TierAlphaBeta
)

func TierFromString(name string) (Tier, bool) {
	switch name {
	case "random":
		return TierRandom, true
	case "alphabeta", "minimax":
		return TierAlphaBeta, true
	default:
		return TierRandom, false
	}
}

func (t Tier) String() string {
	if t == TierRandom {
		return "random"
	}
	return "alphabeta"
}

type Config struct {
	AiEnabled      bool `json:"ai_enabled"`
	AiTier         Tier `json:"ai_tier"`
	AiDepth        int  `json:"ai_depth"`
	AiMoveDelayMs  int  `json:"ai_move_delay_ms"`
	AiChainDelayMs int  `json:"ai_chain_delay_ms"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiEnabled: true,
		AiTier:    TierAlphaBeta,
		AiDepth:   3,

		// A fresh automated turn gets a readable pause; follow-up jumps in a
		// capture chain land faster so multi-jumps read as one sequence.
		AiMoveDelayMs:  600,
		AiChainDelayMs: 250,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
