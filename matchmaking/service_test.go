package matchmaking

import (
	"bufio"
	"net"
	"sync"
	"testing"

	"jokenpo/server/network"
	"jokenpo/server/pubsub"
	"jokenpo/server/ranking"
)

// stubQueue registra re-enfileiramentos; TakePair não é usado nos testes
// de política de vivacidade.
type stubQueue struct {
	mu       sync.Mutex
	requeued []*network.PlayerConn
}

func (q *stubQueue) TakePair() (*network.PlayerConn, *network.PlayerConn) {
	select {} // nunca chamado nos testes
}

func (q *stubQueue) Enqueue(p *network.PlayerConn) {
	if p == nil || !p.IsAlive() {
		return
	}
	q.mu.Lock()
	q.requeued = append(q.requeued, p)
	q.mu.Unlock()
}

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

func newTestService(q PlayerQueue) *Service {
	return NewService(q, pubsub.NewBroker(), ranking.NewStore(""))
}

// TestDeadFirstIsDiscarded: morto na primeira posição nunca é pareado e o
// parceiro vivo volta para a fila.
func TestDeadFirstIsDiscarded(t *testing.T) {
	queue := &stubQueue{}
	s := newTestService(queue)

	dead := pipePlayer(t)
	dead.Close()
	alive := pipePlayer(t)

	if s.filterPair(dead, alive) {
		t.Fatal("par com o primeiro morto não deveria ser pareado")
	}
	if len(queue.requeued) != 1 || queue.requeued[0] != alive {
		t.Errorf("o parceiro vivo deveria ter voltado à fila")
	}
	if s.TotalMatches() != 0 {
		t.Errorf("nenhuma partida deveria ter sido criada")
	}

	t.Log("✓ Matchmaking: primeiro morto descartado, parceiro re-enfileirado")
}

// TestDeadSecondRequeuesFirst: morto na segunda posição faz o primeiro
// (vivo) voltar à fila, sem partida.
func TestDeadSecondRequeuesFirst(t *testing.T) {
	queue := &stubQueue{}
	s := newTestService(queue)

	alive := pipePlayer(t)
	dead := pipePlayer(t)
	dead.Close()

	if s.filterPair(alive, dead) {
		t.Fatal("par com o segundo morto não deveria ser pareado")
	}
	if len(queue.requeued) != 1 || queue.requeued[0] != alive {
		t.Errorf("o primeiro (vivo) deveria ter voltado à fila")
	}

	t.Log("✓ Matchmaking: segundo morto re-enfileira o primeiro")
}

// TestBothDeadDropsPair: dois mortos somem sem re-enfileiramento.
func TestBothDeadDropsPair(t *testing.T) {
	queue := &stubQueue{}
	s := newTestService(queue)

	d1 := pipePlayer(t)
	d1.Close()
	d2 := pipePlayer(t)
	d2.Close()

	if s.filterPair(d1, d2) {
		t.Fatal("par de mortos não deveria ser pareado")
	}
	if len(queue.requeued) != 0 {
		t.Errorf("mortos não deveriam voltar à fila")
	}

	t.Log("✓ Matchmaking: par de mortos descartado por inteiro")
}

// TestLivePairIsAccepted: dois vivos passam pelo filtro.
func TestLivePairIsAccepted(t *testing.T) {
	queue := &stubQueue{}
	s := newTestService(queue)

	p1 := pipePlayer(t)
	p2 := pipePlayer(t)

	if !s.filterPair(p1, p2) {
		t.Fatal("par de vivos deveria ser aceito")
	}
	if len(queue.requeued) != 0 {
		t.Errorf("nenhum re-enfileiramento esperado para par vivo")
	}

	t.Log("✓ Matchmaking: par vivo aceito para partida")
}
