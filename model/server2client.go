package model

// ServerMessage is one frame from the server. Exactly one field is set.
type ServerMessage struct {
	StartGame      *StartGame      `json:"start-game,omitempty"`
	DoMove         *DoMove         `json:"do-move,omitempty"`
	DoublesPenalty *DoublesPenalty `json:"doubles-penalty,omitempty"`
	GameOver       *GameOver       `json:"game-over,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type StartGame struct {
	Color Color `json:"color"`
}

type DoMove struct {
	Board Board `json:"board"`
	Dice  Dice  `json:"dice"`
}

type DoublesPenalty struct{}

type GameOver struct {
	Winner    *Color `json:"winner,omitempty"`
	Ejected   bool   `json:"ejected,omitempty"`
	Abandoned bool   `json:"abandoned,omitempty"`
	Board     Board  `json:"board"`
}

// ClientMessage answers the last ServerMessage: Name after StartGame, Moves
// after DoMove, Void after DoublesPenalty.
type ClientMessage struct {
	Name  string `json:"name,omitempty"`
	Moves []Move `json:"moves,omitempty"`
	Void  bool   `json:"void,omitempty"`
}
