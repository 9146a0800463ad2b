package entity

// Move is one recorded claim. Moves are exported as JSON so a game can be rebuilt later.
type Move struct {
	Row      int `json:"row"`
	Column   int `json:"column"`
	PlayerID int `json:"player_id"`
}
