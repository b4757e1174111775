package lobby

import (
	"log"

	"jokenpo/server/network"
	"jokenpo/server/protocol"
	"jokenpo/server/pubsub"
)

// capacidade da fila de espera. Enqueue bloqueia se estourar, o que na
// prática só acontece sob um lobby absurdamente cheio.
const queueCapacity = 1024

// Lobby é a fila FIFO de jogadores aguardando partida. É a única estrutura
// compartilhada entre o accept e o matchmaking; o canal interno serializa
// enqueue/dequeue sem busy-wait.
type Lobby struct {
	queue  chan *network.PlayerConn
	broker *pubsub.Broker
}

// NewLobby cria um lobby vazio.
func NewLobby(broker *pubsub.Broker) *Lobby {
	return &Lobby{
		queue:  make(chan *network.PlayerConn, queueCapacity),
		broker: broker,
	}
}

// Enqueue coloca o jogador no fim da fila e avisa que ele entrou no lobby.
// Conexão nil ou morta é ignorada; a desconexão já foi logada no Close.
func (l *Lobby) Enqueue(p *network.PlayerConn) {
	if p == nil || !p.IsAlive() {
		return
	}
	p.Send("=== Você entrou no lobby. Aguardando outro jogador... ===")

	ev := protocol.NewEvent(protocol.LOBBY_JOIN)
	ev.Player = p.Name()
	l.broker.Publish(protocol.TopicEvents, ev)

	l.queue <- p
	log.Printf("[LOBBY] %s entrou na fila (%d aguardando)", p.Name(), len(l.queue))
}

// TakePair bloqueia até conseguir retirar dois jogadores, na ordem de
// chegada. Não filtra vivacidade: isso é responsabilidade do matchmaking.
func (l *Lobby) TakePair() (*network.PlayerConn, *network.PlayerConn) {
	first := <-l.queue
	second := <-l.queue
	return first, second
}

// Len informa quantos jogadores aguardam pareamento.
func (l *Lobby) Len() int {
	return len(l.queue)
}
