package main

type HistoryEntry struct {
	FromX     int
	FromY     int
	ToX       int
	ToY       int
	Player    PlayerColor
	Capture   bool
	CapturedX int
	CapturedY int
	Promoted  bool
	IsAi      bool
	ElapsedMs float64
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
