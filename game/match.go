package game

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"jokenpo/server/network"
	"jokenpo/server/protocol"
	"jokenpo/server/pubsub"
	"jokenpo/server/ranking"
)

// WinsNeeded é quantas rodadas vencidas fecham a partida (melhor-de-3).
const WinsNeeded = 2

// MatchState é a fase da máquina de estados da partida.
type MatchState int

const (
	StateAnnounce MatchState = iota
	StateRoundInProgress
	StateMatchDecided
	StateRematchPrompt
	StateTerminated
)

// Requeuer é para onde os sobreviventes voltam quando a partida acaba.
// A interface quebra o ciclo de import com o pacote lobby e facilita os
// testes.
type Requeuer interface {
	Enqueue(p *network.PlayerConn)
}

// Match é uma partida 1v1. É dona exclusiva das duas conexões durante toda
// a sua vida: nenhuma outra goroutine lê ou escreve nelas até a disposição
// final devolvê-las ao lobby ou fechá-las.
type Match struct {
	ID string

	p1, p2 *network.PlayerConn
	score  [2]int
	round  int
	state  MatchState
	mu     sync.Mutex

	queue  Requeuer
	broker *pubsub.Broker
	rank   *ranking.Store
	done   chan bool
}

// NewMatch cria uma partida pronta para rodar entre dois jogadores vivos.
func NewMatch(id string, p1, p2 *network.PlayerConn, queue Requeuer, broker *pubsub.Broker, rank *ranking.Store) *Match {
	return &Match{
		ID:     id,
		p1:     p1,
		p2:     p2,
		round:  1,
		state:  StateAnnounce,
		queue:  queue,
		broker: broker,
		rank:   rank,
		done:   make(chan bool, 1),
	}
}

// Done recebe true quando a disposição final da partida terminou.
func (m *Match) Done() <-chan bool {
	return m.done
}

// State devolve a fase atual da partida.
func (m *Match) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Score devolve o placar corrente (p1, p2).
func (m *Match) Score() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score[0], m.score[1]
}

// Round devolve o número da rodada corrente (começa em 1).
func (m *Match) Round() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.round
}

func (m *Match) setState(s MatchState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Run executa a partida até a negociação de revanche se esgotar ou alguém
// desconectar. Roda na própria goroutine da partida; o matchmaking nunca
// espera por ela.
func (m *Match) Run() {
	log.Printf("[MATCH %s] Nova partida: %s vs %s", m.ID, m.p1.Name(), m.p2.Name())
	defer m.dispose()

	playAgain := true
	for playAgain && m.p1.IsAlive() && m.p2.IsAlive() {
		m.announce()
		if err := m.playSet(); err != nil {
			m.abort(err)
			return
		}
		var err error
		playAgain, err = m.askRematch()
		if err != nil {
			m.abort(err)
			return
		}
	}
}

// announce abre (ou reabre, numa revanche) a partida para os dois lados.
func (m *Match) announce() {
	m.setState(StateAnnounce)
	m.broadcast(fmt.Sprintf("=== Partida: %s vs %s ===", m.p1.Name(), m.p2.Name()))

	ev := protocol.NewEvent(protocol.MATCH_START)
	ev.MatchID = m.ID
	ev.Player = m.p1.Name()
	ev.Opponent = m.p2.Name()
	m.broker.Publish(protocol.TopicEvents, ev)
}

// playSet joga rodadas até um dos lados alcançar WinsNeeded vitórias.
func (m *Match) playSet() error {
	for m.score[0] < WinsNeeded && m.score[1] < WinsNeeded {
		m.setState(StateRoundInProgress)
		m.broadcast(fmt.Sprintf("-- RODADA %d --", m.round))

		// Prompts sequenciais: p1 responde por completo antes de p2 ser
		// consultado.
		mv1, err := m.askMove(m.p1)
		if err != nil {
			return err
		}
		mv2, err := m.askMove(m.p2)
		if err != nil {
			return err
		}
		m.resolveRound(mv1, mv2)
	}

	m.setState(StateMatchDecided)
	winner := m.p1
	if m.score[1] > m.score[0] {
		winner = m.p2
	}
	m.broadcast(fmt.Sprintf(">>> %s VENCEU A PARTIDA! <<<", winner.Name()))

	m.registerResult(winner.Name())

	ev := protocol.NewEvent(protocol.MATCH_END)
	ev.MatchID = m.ID
	ev.Player = winner.Name()
	m.broker.Publish(protocol.TopicEvents, ev)
	return nil
}

// resolveRound aplica a dominância cíclica, anuncia o desfecho e o placar
// para os dois lados e avança a rodada, inclusive nos empates.
func (m *Match) resolveRound(mv1, mv2 Move) {
	switch res := Compare(mv1, mv2); {
	case res == 0:
		m.broadcast(fmt.Sprintf("Empate! (%s vs %s)", mv1, mv2))
	case res > 0:
		m.addPoint(0)
		m.broadcast(fmt.Sprintf("%s venceu a rodada! (%s vence %s)", m.p1.Name(), mv1, mv2))
	default:
		m.addPoint(1)
		m.broadcast(fmt.Sprintf("%s venceu a rodada! (%s vence %s)", m.p2.Name(), mv2, mv1))
	}
	m.broadcast(fmt.Sprintf("Placar: %s %d - %d %s", m.p1.Name(), m.score[0], m.score[1], m.p2.Name()))

	ev := protocol.NewEvent(protocol.ROUND_RESULT)
	ev.MatchID = m.ID
	ev.Round = m.round
	ev.Detail = fmt.Sprintf("%s x %s", mv1, mv2)
	m.broker.Publish(protocol.TopicEvents, ev)

	m.mu.Lock()
	m.round++
	m.mu.Unlock()
}

func (m *Match) addPoint(i int) {
	m.mu.Lock()
	m.score[i]++
	m.mu.Unlock()
}

// askMove insiste até o jogador mandar uma jogada válida. O laço só é
// limitado pela cooperação do jogador; desconexão sobe como erro e aborta
// a partida inteira.
func (m *Match) askMove(p *network.PlayerConn) (Move, error) {
	for {
		answer, err := p.Request(fmt.Sprintf("%s, sua jogada [rock/paper/scissors]:", p.Name()))
		if err != nil {
			return 0, err
		}
		if mv, ok := ParseMove(answer); ok {
			return mv, nil
		}
		p.Send("Jogada inválida. Use rock, paper ou scissors (ou r/p/s).")
	}
}

// askRematch pergunta, em sequência, se cada lado quer jogar de novo.
// Vale como "sim" qualquer resposta começando com y, em qualquer caixa.
// Ninguém é re-enfileirado aqui: a disposição final cuida disso uma única
// vez, em todos os caminhos de término.
func (m *Match) askRematch() (bool, error) {
	m.setState(StateRematchPrompt)

	a1, err := m.p1.Request("Jogar novamente? (y/n):")
	if err != nil {
		return false, err
	}
	a2, err := m.p2.Request("Jogar novamente? (y/n):")
	if err != nil {
		return false, err
	}

	y1 := isYes(a1)
	y2 := isYes(a2)

	switch {
	case y1 && y2:
		m.broadcast("Começando nova partida!")
		m.resetForRematch()
		return true, nil
	case y1 && !y2:
		m.p1.Send("Seu oponente não quis revanche. Voltando ao lobby.")
		return false, nil
	case y2 && !y1:
		m.p2.Send("Seu oponente não quis revanche. Voltando ao lobby.")
		return false, nil
	default:
		m.broadcast("Fim de jogo. Ambos voltam ao lobby.")
		return false, nil
	}
}

// broadcast manda a mesma linha para os dois jogadores.
func (m *Match) broadcast(text string) {
	m.p1.Send(text)
	m.p2.Send(text)
}

func isYes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// resetForRematch zera placar e rodada para o próximo anúncio.
func (m *Match) resetForRematch() {
	m.mu.Lock()
	m.score = [2]int{}
	m.round = 1
	m.mu.Unlock()

	ev := protocol.NewEvent(protocol.REMATCH)
	ev.MatchID = m.ID
	m.broker.Publish(protocol.TopicEvents, ev)
}

// registerResult atualiza o placar agregado no Redis, em melhor esforço:
// falha de placar nunca afeta a partida.
func (m *Match) registerResult(winner string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.rank.RegisterWin(ctx, winner); err != nil {
		log.Printf("[MATCH %s] Falha ao registrar vitória no placar: %v", m.ID, err)
	}
	if err := m.rank.RegisterMatch(ctx); err != nil {
		log.Printf("[MATCH %s] Falha ao registrar partida no placar: %v", m.ID, err)
	}
}

// abort registra um término por desconexão no meio do jogo. A disposição
// final (no defer do Run) cuida dos dois lados.
func (m *Match) abort(err error) {
	log.Printf("[MATCH %s] Partida abortada: %v", m.ID, err)

	ev := protocol.NewEvent(protocol.MATCH_ABORTED)
	ev.MatchID = m.ID
	ev.Detail = err.Error()
	m.broker.Publish(protocol.TopicEvents, ev)
}

// dispose é a reconciliação final, executada exatamente uma vez por
// partida: sobrevivente volta ao lobby, morto é fechado.
func (m *Match) dispose() {
	m.setState(StateTerminated)
	for _, p := range []*network.PlayerConn{m.p1, m.p2} {
		if p.IsAlive() {
			m.queue.Enqueue(p)
		} else {
			p.Close()
		}
	}
	log.Printf("[MATCH %s] Sessão encerrada", m.ID)
	m.done <- true
}
