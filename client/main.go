package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
)

// Cliente de console do coordenador: imprime tudo o que o servidor manda e
// encaminha cada linha digitada. Uso: client [host [porta]].
func main() {
	host := "127.0.0.1"
	port := "5000"
	if len(os.Args) > 1 {
		host = os.Args[1]
	}
	if len(os.Args) > 2 {
		port = os.Args[2]
	}

	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		log.Fatalf("[CLIENT] Não foi possível conectar a %s:%s: %v", host, port, err)
	}
	defer conn.Close()
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	// Leitora de fundo: mostra as linhas do servidor e encerra o processo
	// quando o stream acaba.
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
		fmt.Println("[Desconectado]")
		os.Exit(0)
	}()

	// Encaminha a entrada do usuário para o servidor, linha a linha.
	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		if _, err := fmt.Fprintf(conn, "%s\n", stdin.Text()); err != nil {
			return
		}
	}
}
