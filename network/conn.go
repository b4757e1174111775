package network

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"strings"
	"sync"
	"sync/atomic"
)

// lineBuffer limita quantas linhas não consumidas uma conexão pode acumular.
// Linhas digitadas fora de prompt ficam aqui e são consumidas pelo próximo
// Receive; o leitor bloqueia se o jogador inundar o servidor.
const lineBuffer = 16

// PlayerConn representa um jogador conectado.
//
// Uma única goroutine leitora alimenta o canal de linhas; Receive e Request
// consomem dele. Isso garante que lobby e partida nunca disputam o mesmo
// stream. A conexão é viva até o transporte fechar ou um Send/Receive falhar.
type PlayerConn struct {
	conn      net.Conn
	name      string
	lines     chan string
	alive     atomic.Bool
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewPlayerConn embrulha uma conexão de rede e inicia a goroutine leitora.
// O nome começa vazio; Handshake o preenche.
func NewPlayerConn(conn net.Conn) *PlayerConn {
	p := &PlayerConn{
		conn:  conn,
		lines: make(chan string, lineBuffer),
	}
	p.alive.Store(true)
	go p.readLoop()
	return p
}

// readLoop lê linhas do transporte até o fim do stream e as publica no
// canal interno. No EOF fecha a conexão, o que acorda qualquer Receive.
func (p *PlayerConn) readLoop() {
	scanner := bufio.NewScanner(p.conn)
	for scanner.Scan() {
		p.lines <- scanner.Text()
	}
	// Marca morto antes de acordar quem está em Receive, para que um EOF
	// observado já reflita IsAlive() == false.
	p.Close()
	close(p.lines)
}

// Send entrega uma linha ao jogador. Numa conexão morta é um no-op, não um
// erro. Falha de escrita marca a conexão como morta.
func (p *PlayerConn) Send(text string) {
	if !p.IsAlive() {
		return
	}
	p.writeMu.Lock()
	_, err := fmt.Fprintf(p.conn, "%s\n", text)
	p.writeMu.Unlock()
	if err != nil {
		p.Close()
	}
}

// Receive bloqueia até chegar uma linha completa ou o stream terminar.
// Fim de stream é sinalizado com io.EOF, nunca com pânico.
func (p *PlayerConn) Receive() (string, error) {
	line, ok := <-p.lines
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

// Request envia um prompt e bloqueia aguardando a resposta.
func (p *PlayerConn) Request(prompt string) (string, error) {
	p.Send(prompt)
	return p.Receive()
}

// IsAlive informa, sem bloquear, se a conexão ainda está utilizável.
func (p *PlayerConn) IsAlive() bool {
	return p.alive.Load()
}

// Name devolve a identidade de exibição do jogador.
func (p *PlayerConn) Name() string {
	return p.name
}

// Close é idempotente: marca a conexão como morta, libera o transporte e
// loga a identidade para observabilidade.
func (p *PlayerConn) Close() {
	p.closeOnce.Do(func() {
		p.alive.Store(false)
		_ = p.conn.Close()
		log.Printf("[CONN] Cliente desconectado: %s", p.name)
	})
}

// Handshake pede o nome de exibição ao jogador. Resposta vazia ou só de
// espaços recebe uma identidade gerada, para tolerar clientes preguiçosos.
func (p *PlayerConn) Handshake() error {
	p.Send("Bem-vindo ao servidor de Jokenpo!")
	answer, err := p.Request("Digite seu nome:")
	if err != nil {
		return err
	}
	name := strings.TrimSpace(answer)
	if name == "" {
		name = fmt.Sprintf("Jogador%d", rand.Intn(1000))
	}
	p.name = name
	p.Send(fmt.Sprintf("Olá, %s!", name))
	return nil
}
