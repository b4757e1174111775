package protocol

import "time"

// Tipos de evento publicados no broker interno.
// A API de observação consome estes eventos; eles nunca vão ao cliente.
const (
	LOBBY_JOIN    = "LOBBY_JOIN"
	MATCH_START   = "MATCH_START"
	ROUND_RESULT  = "ROUND_RESULT"
	MATCH_END     = "MATCH_END"
	MATCH_ABORTED = "MATCH_ABORTED"
	REMATCH       = "REMATCH"
)

// TopicEvents é o tópico único onde todos os eventos de partida circulam.
const TopicEvents = "match.events"

// Event descreve um acontecimento no coordenador (entrada no lobby,
// início/fim de partida, resultado de rodada).
type Event struct {
	T        string    `json:"t"`
	MatchID  string    `json:"matchId,omitempty"`
	Player   string    `json:"player,omitempty"`
	Opponent string    `json:"opponent,omitempty"`
	Round    int       `json:"round,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// NewEvent monta um Event já carimbado com o instante atual.
func NewEvent(t string) Event {
	return Event{T: t, At: time.Now()}
}
