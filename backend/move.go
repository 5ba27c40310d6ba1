package main

// Move is a candidate destination for some piece. CapturedX/CapturedY are
// meaningful only when Capture is set.
type Move struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Capture   bool `json:"capture"`
	CapturedX int  `json:"captured_x,omitempty"`
	CapturedY int  `json:"captured_y,omitempty"`
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y &&
		m.Capture == other.Capture &&
		m.CapturedX == other.CapturedX && m.CapturedY == other.CapturedY
}

// CandidateMove pairs a move with the piece it belongs to; this is what the
// search hands back to callers.
type CandidateMove struct {
	FromX int  `json:"from_x"`
	FromY int  `json:"from_y"`
	Move  Move `json:"move"`
}
