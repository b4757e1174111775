package matchmaking

import (
	"fmt"
	"log"
	"sync"
	"time"

	"jokenpo/server/game"
	"jokenpo/server/network"
	"jokenpo/server/pubsub"
	"jokenpo/server/ranking"
)

// PlayerQueue é a visão que o matchmaking tem do lobby: retirar pares na
// ordem de chegada e devolver jogadores à fila.
type PlayerQueue interface {
	TakePair() (*network.PlayerConn, *network.PlayerConn)
	Enqueue(p *network.PlayerConn)
}

// Service é o worker único de pareamento. Ele drena pares do lobby, filtra
// vivacidade e entrega cada par vivo a uma partida em goroutine própria,
// de modo que o laço nunca fica preso numa partida em andamento.
type Service struct {
	queue  PlayerQueue
	broker *pubsub.Broker
	rank   *ranking.Store

	mu      sync.Mutex
	matches map[string]*game.Match
	total   int
}

// NewService cria o serviço de matchmaking.
func NewService(queue PlayerQueue, broker *pubsub.Broker, rank *ranking.Store) *Service {
	return &Service{
		queue:   queue,
		broker:  broker,
		rank:    rank,
		matches: make(map[string]*game.Match),
	}
}

// Run é o laço principal; roda numa goroutine dedicada e não retorna.
// Pareamento é estritamente FIFO por ordem de chegada, sem prioridade.
func (s *Service) Run() {
	log.Println("[MATCHMAKING] Serviço de pareamento iniciado.")
	for {
		first, second := s.queue.TakePair()
		if !s.filterPair(first, second) {
			continue
		}
		s.startMatch(first, second)
	}
}

// filterPair aplica a política de vivacidade: a fila não filtra mortos,
// isso é feito aqui. Um morto é descartado (a desconexão já foi logada no
// Close) e o parceiro vivo volta para a fila — nos dois ramos. Devolve
// true somente se o par pode ser pareado.
func (s *Service) filterPair(first, second *network.PlayerConn) bool {
	if !first.IsAlive() {
		s.queue.Enqueue(second)
		return false
	}
	if !second.IsAlive() {
		s.queue.Enqueue(first)
		return false
	}
	return true
}

// startMatch cria a partida, registra no mapa de ativas e a solta na sua
// própria goroutine.
func (s *Service) startMatch(p1, p2 *network.PlayerConn) {
	id := fmt.Sprintf("match_%d", time.Now().UnixNano())
	match := game.NewMatch(id, p1, p2, s.queue, s.broker, s.rank)

	s.mu.Lock()
	s.matches[id] = match
	s.total++
	s.mu.Unlock()

	log.Printf("[MATCHMAKING] Partida %s criada: %s vs %s", id, p1.Name(), p2.Name())
	go match.Run()
	go s.monitorMatch(match)
}

// monitorMatch aguarda o fim da partida para removê-la das ativas.
func (s *Service) monitorMatch(match *game.Match) {
	<-match.Done()

	s.mu.Lock()
	delete(s.matches, match.ID)
	s.mu.Unlock()
	log.Printf("[MATCHMAKING] Partida %s finalizada e removida.", match.ID)
}

// ActiveMatches informa quantas partidas estão em andamento.
func (s *Service) ActiveMatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

// TotalMatches informa quantas partidas já foram criadas desde o início.
func (s *Service) TotalMatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
