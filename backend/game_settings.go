package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BoardSize    int        `json:"board_size"`
	StartingRows int        `json:"starting_rows"`
	WhiteType    PlayerType `json:"-"`
	BlackType    PlayerType `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:    8,
		StartingRows: 2,
		WhiteType:    PlayerHuman,
		BlackType:    PlayerAI,
	}
}
