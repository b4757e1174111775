package pubsub

import (
	"log"
	"sync"

	"jokenpo/server/protocol"
)

// Subscriber é o canal por onde um assinante recebe eventos.
type Subscriber chan protocol.Event

// Broker distribui eventos de partida por tópico para os assinantes.
// Os publicadores (lobby, matchmaking, partidas) nunca bloqueiam:
// um assinante lento perde eventos, não atrasa o jogo.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[Subscriber]bool
}

// NewBroker cria um novo Broker sem tópicos.
func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[Subscriber]bool),
	}
}

// Subscribe registra um novo assinante num tópico e devolve o seu canal.
func (b *Broker) Subscribe(topic string) Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(Subscriber, 64)
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[Subscriber]bool)
	}
	b.topics[topic][sub] = true
	return sub
}

// Unsubscribe remove o assinante de todos os tópicos e fecha o seu canal.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	for topic := range b.topics {
		if b.topics[topic][sub] {
			delete(b.topics[topic], sub)
			found = true
		}
	}
	if found {
		close(sub)
	}
}

// Publish entrega o evento a todos os assinantes do tópico.
// O envio é não bloqueante; eventos descartados são logados para debug.
func (b *Broker) Publish(topic string, ev protocol.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[topic] {
		select {
		case sub <- ev:
		default:
			log.Printf("[PUBSUB] Evento %s descartado no tópico '%s': canal do assinante cheio", ev.T, topic)
		}
	}
}
