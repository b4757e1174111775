package network

import (
	"log"
	"net"
)

// Enqueuer é o destino das conexões recém-aceitas (o lobby). A interface
// local quebra o ciclo de import com o pacote lobby.
type Enqueuer interface {
	Enqueue(p *PlayerConn)
}

// TCPServer aceita jogadores e os entrega ao lobby.
type TCPServer struct {
	addr  string
	lobby Enqueuer
}

// NewTCPServer cria o servidor TCP dos jogadores.
func NewTCPServer(addr string, lobby Enqueuer) *TCPServer {
	return &TCPServer{addr: addr, lobby: lobby}
}

// Listen faz o bind e entra no laço de accept. Bloqueia a goroutine
// chamadora; só retorna erro em falha de setup ou de accept.
func (s *TCPServer) Listen() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	log.Printf("[NETWORK] Servidor ouvindo em %s", s.addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConnection(conn)
	}
}

// handleConnection faz o handshake e coloca o jogador no lobby.
// Depois disso a goroutine termina; a leitora interna do PlayerConn
// continua detectando desconexão.
func (s *TCPServer) handleConnection(conn net.Conn) {
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	player := NewPlayerConn(conn)
	if err := player.Handshake(); err != nil {
		player.Close()
		return
	}
	log.Printf("[NETWORK] Jogador conectado: %s (%s)", player.Name(), conn.RemoteAddr())
	s.lobby.Enqueue(player)
}
