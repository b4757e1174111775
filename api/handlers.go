package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"jokenpo/server/lobby"
	"jokenpo/server/matchmaking"
	"jokenpo/server/protocol"
	"jokenpo/server/pubsub"
	"jokenpo/server/ranking"
)

// maxEvents é quantos eventos recentes a API retém para /api/events.
const maxEvents = 50

// Server expõe o estado do coordenador por HTTP, para observação: tamanho
// do lobby, partidas ativas, placar e eventos recentes. Não participa do
// jogo em si.
type Server struct {
	lobby *lobby.Lobby
	svc   *matchmaking.Service
	rank  *ranking.Store

	mu     sync.Mutex
	events []protocol.Event
}

// NewServer cria o servidor da API e assina o tópico de eventos do broker.
func NewServer(l *lobby.Lobby, svc *matchmaking.Service, rank *ranking.Store, broker *pubsub.Broker) *Server {
	s := &Server{
		lobby: l,
		svc:   svc,
		rank:  rank,
	}
	go s.collectEvents(broker.Subscribe(protocol.TopicEvents))
	return s
}

// collectEvents mantém um buffer circular com os eventos mais recentes.
func (s *Server) collectEvents(sub pubsub.Subscriber) {
	for ev := range sub {
		s.mu.Lock()
		s.events = append(s.events, ev)
		if len(s.events) > maxEvents {
			s.events = s.events[len(s.events)-maxEvents:]
		}
		s.mu.Unlock()
	}
}

// Router configura e devolve o router HTTP com todos os endpoints.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/ranking", s.handleRanking)
	mux.HandleFunc("/api/events", s.handleEvents)
	return mux
}

// handleStatus responde um resumo do estado corrente do coordenador.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"lobby":         s.lobby.Len(),
		"activeMatches": s.svc.ActiveMatches(),
		"totalMatches":  s.svc.TotalMatches(),
	})
}

// handleRanking responde o top 10 do placar agregado.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	if !s.rank.Enabled() {
		http.Error(w, "Placar desabilitado (REDIS_ADDR não configurado)", http.StatusServiceUnavailable)
		return
	}
	entries, err := s.rank.Top(r.Context(), 10)
	if err != nil {
		log.Printf("[API] Erro ao consultar placar: %v", err)
		http.Error(w, "Erro ao consultar o placar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

// handleEvents responde os eventos mais recentes, do mais antigo para o
// mais novo.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := make([]protocol.Event, len(s.events))
	copy(events, s.events)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}
