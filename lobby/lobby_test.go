package lobby

import (
	"bufio"
	"net"
	"testing"

	"jokenpo/server/network"
	"jokenpo/server/pubsub"
)

// pipePlayer cria um PlayerConn cujo lado remoto só descarta o que recebe.
func pipePlayer(t *testing.T) *network.PlayerConn {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	go func() {
		scanner := bufio.NewScanner(clientSide)
		for scanner.Scan() {
		}
	}()
	return network.NewPlayerConn(serverSide)
}

// TestFIFOOrder garante que os pares saem na mesma ordem relativa em que
// os jogadores entraram.
func TestFIFOOrder(t *testing.T) {
	l := NewLobby(pubsub.NewBroker())

	e1 := pipePlayer(t)
	e2 := pipePlayer(t)
	e3 := pipePlayer(t)
	e4 := pipePlayer(t)
	for _, p := range []*network.PlayerConn{e1, e2, e3, e4} {
		l.Enqueue(p)
	}
	if l.Len() != 4 {
		t.Fatalf("fila deveria ter 4 jogadores, tem %d", l.Len())
	}

	a, b := l.TakePair()
	if a != e1 || b != e2 {
		t.Errorf("primeiro par deveria ser (E1,E2)")
	}
	c, d := l.TakePair()
	if c != e3 || d != e4 {
		t.Errorf("segundo par deveria ser (E3,E4)")
	}

	t.Log("✓ Lobby: ordem FIFO preservada nos pares")
}

// TestEnqueueRejectsDeadAndNil: conexão nil ou morta nunca entra na fila.
func TestEnqueueRejectsDeadAndNil(t *testing.T) {
	l := NewLobby(pubsub.NewBroker())

	l.Enqueue(nil)
	if l.Len() != 0 {
		t.Errorf("nil não deveria entrar na fila")
	}

	dead := pipePlayer(t)
	dead.Close()
	l.Enqueue(dead)
	if l.Len() != 0 {
		t.Errorf("conexão morta não deveria entrar na fila")
	}

	alive := pipePlayer(t)
	l.Enqueue(alive)
	if l.Len() != 1 {
		t.Errorf("conexão viva deveria entrar na fila")
	}

	t.Log("✓ Lobby: nil e mortos rejeitados na entrada")
}
